package client

import (
	"errors"
	"sync/atomic"
)

// ErrAlreadySubscribed is delivered to the error handler when a Single is
// subscribed a second time.
var ErrAlreadySubscribed = errors.New("single already subscribed")

// errNoProducer is delivered when a zero-value Single is subscribed.
var errNoProducer = errors.New("single has no producer")

// Single is a lazy sequence of exactly one element or one terminal error.
// Nothing runs until Subscribe is called, and a Single can be subscribed at
// most once.
type Single[T any] struct {
	exec       Executor
	run        func() (T, error)
	subscribed atomic.Bool
}

// Just creates a Single that emits the given value.
func Just[T any](value T) *Single[T] {
	return &Single[T]{run: func() (T, error) { return value, nil }}
}

// Fail creates a Single that terminates with the given error.
func Fail[T any](err error) *Single[T] {
	return &Single[T]{run: func() (T, error) {
		var zero T
		return zero, err
	}}
}

// NewSingle creates a Single backed by the given producer. The producer runs
// once, when the Single is subscribed.
func NewSingle[T any](run func() (T, error)) *Single[T] {
	return &Single[T]{run: run}
}

// Bind installs a deferred untyped producer and the executor the subscription
// work runs on. It is wiring for transport layers that assemble singles
// reflectively; application code should use Just, Fail or NewSingle.
func (s *Single[T]) Bind(exec Executor, run func() (any, error)) {
	s.exec = exec
	s.run = func() (T, error) {
		var zero T
		v, err := run()
		if err != nil {
			return zero, err
		}
		t, ok := v.(T)
		if !ok {
			return zero, nil
		}
		return t, nil
	}
}

// Subscribe runs the producer and routes the outcome to exactly one of the
// two handlers. When the Single carries an executor the work runs there and
// Subscribe returns immediately; otherwise it runs on the calling goroutine.
// A second subscription delivers ErrAlreadySubscribed to onError.
func (s *Single[T]) Subscribe(onSuccess func(T), onError func(error)) {
	if !s.subscribed.CompareAndSwap(false, true) {
		if onError != nil {
			onError(ErrAlreadySubscribed)
		}
		return
	}
	deliver := func() {
		if s.run == nil {
			if onError != nil {
				onError(errNoProducer)
			}
			return
		}
		v, err := s.run()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(v)
		}
	}
	if s.exec != nil {
		s.exec.Execute(deliver)
		return
	}
	deliver()
}
