package mocknet

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/guoGavin/retrofit/pkg/client"
)

// The dispatch engine. Create builds a proxy for a service definition struct;
// every func field is replaced by an intercepting closure that decides
// failure, waits out the simulated delay on the appropriate goroutine,
// invokes the real implementation and delivers the outcome through the
// channel the method's invocation style dictates.
//
// Per-call choreography:
//   - synchronous: everything runs on the caller's goroutine; no pools.
//   - callback: the delay-then-invoke sequence runs on the transport
//     executor, the outcome is redelivered on the delivery executor.
//   - stream: subscribing runs delay-then-invoke on the transport executor
//     only; the delivery executor is never used.

// Create wraps a real in-process implementation of a service definition. The
// service must be a pointer to a struct whose exported fields are funcs; the
// returned value is a new pointer of the same type with every func field
// intercepted. Create panics on a malformed service definition, which is a
// programmer error caught at wiring time.
func (m *MockClient) Create(service any) any {
	rv := reflect.ValueOf(service)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic("mocknet: service must be a pointer to a struct of func fields")
	}
	styles := m.stylesFor(rv.Type())
	proxy := reflect.New(rv.Type().Elem())
	for i := range styles {
		st := &styles[i]
		field := rv.Elem().Field(i)
		target := proxy.Elem().Field(i)
		if st.kind == styleOpaque {
			target.Set(field)
			continue
		}
		if field.IsNil() {
			// Unimplemented method: the proxy field stays nil as well.
			continue
		}
		target.Set(reflect.MakeFunc(st.fnType, m.handlerFor(st, field)))
	}
	return proxy.Interface()
}

// stylesFor classifies a service type, consulting the per-type cache first.
func (m *MockClient) stylesFor(t reflect.Type) []methodStyle {
	if cached, ok := m.styles.Get(t); ok {
		return cached
	}
	styles, err := classifyService(t)
	if err != nil {
		panic(fmt.Sprintf("mocknet: %v", err))
	}
	m.styles.Add(t, styles)
	return styles
}

// handlerFor builds the MakeFunc body for one classified method.
func (m *MockClient) handlerFor(st *methodStyle, real reflect.Value) func([]reflect.Value) []reflect.Value {
	switch st.kind {
	case styleCallback:
		return func(args []reflect.Value) []reflect.Value {
			return m.invokeCallback(st, real, args)
		}
	case styleStream:
		return func(args []reflect.Value) []reflect.Value {
			return m.invokeStream(st, real, args)
		}
	default:
		return func(args []reflect.Value) []reflect.Value {
			return m.invokeSync(st, real, args)
		}
	}
}

// invokeSync runs the whole sequence on the caller's goroutine: the delay is
// a blocking pause and failures surface as the method's error result.
func (m *MockClient) invokeSync(st *methodStyle, real reflect.Value, args []reflect.Value) []reflect.Value {
	if m.CalculateIsFailure() {
		delay := m.CalculateDelayForError()
		m.logCall(st, delay, true)
		sleep(delay)
		return st.failureResults(m.applyHandler(m.networkError(st.successType)))
	}
	delay := m.CalculateDelayForCall()
	m.logCall(st, delay, false)
	sleep(delay)
	out, raised := safeCall(real, args)
	if raised == nil {
		raised = st.takeError(out)
	}
	if raised != nil {
		return st.failureResults(m.applyHandler(m.normalize(raised, st.successType)))
	}
	return out
}

// invokeCallback submits the delay-then-invoke sequence to the transport
// executor and returns immediately; the real implementation sees a collector
// callback, and whatever it produces is redelivered on the delivery executor.
func (m *MockClient) invokeCallback(st *methodStyle, real reflect.Value, args []reflect.Value) []reflect.Value {
	userCB := args[st.cbIndex]
	callArgs := make([]reflect.Value, len(args))
	copy(callArgs, args)
	m.transport.Execute(func() {
		if m.CalculateIsFailure() {
			delay := m.CalculateDelayForError()
			m.logCall(st, delay, true)
			sleep(delay)
			m.deliverCallbackFailure(userCB, m.networkError(st.successType))
			return
		}
		delay := m.CalculateDelayForCall()
		m.logCall(st, delay, false)
		sleep(delay)
		col := newCollector(st.cbType)
		callArgs[st.cbIndex] = col.value
		out, raised := safeCall(real, callArgs)
		if raised == nil {
			raised = st.takeError(out)
		}
		if raised != nil {
			m.deliverCallbackFailure(userCB, m.normalize(raised, st.successType))
			return
		}
		col.redeliver(m.delivery, userCB)
	})
	return zeroResults(st.fnType)
}

// deliverCallbackFailure runs the translator pipeline and invokes the user
// callback's failure func on the delivery executor.
func (m *MockClient) deliverCallbackFailure(cb reflect.Value, norm *client.Error) {
	ce := adaptCallback(m.applyHandler(norm))
	m.delivery.Execute(func() {
		callOnFailure(cb, reflect.ValueOf(ce))
	})
}

// invokeStream assembles the lazy single immediately and cheaply; the
// delay-then-invoke sequence runs on the transport executor when the caller
// subscribes. The delivery executor is not involved.
func (m *MockClient) invokeStream(st *methodStyle, real reflect.Value, args []reflect.Value) []reflect.Value {
	callArgs := make([]reflect.Value, len(args))
	copy(callArgs, args)
	single := reflect.New(st.streamType.Elem())
	single.Interface().(streamBinder).Bind(m.transport, func() (any, error) {
		if m.CalculateIsFailure() {
			delay := m.CalculateDelayForError()
			m.logCall(st, delay, true)
			sleep(delay)
			return nil, m.applyHandler(m.networkError(st.successType))
		}
		delay := m.CalculateDelayForCall()
		m.logCall(st, delay, false)
		sleep(delay)
		out, raised := safeCall(real, callArgs)
		if raised != nil {
			return nil, m.applyHandler(m.normalize(raised, st.successType))
		}
		produced := out[0]
		if produced.IsNil() {
			raised = errors.New("stream method returned a nil single")
			return nil, m.applyHandler(m.normalize(raised, st.successType))
		}
		value, err := drainSingle(produced)
		if err != nil {
			return nil, m.applyHandler(m.normalize(err, st.successType))
		}
		return value, nil
	})
	return []reflect.Value{single}
}

// logCall records one dispatch decision.
func (m *MockClient) logCall(st *methodStyle, delayMillis int64, failure bool) {
	m.log.WithFields(logrus.Fields{
		"call_id":  uuid.NewString(),
		"method":   st.name,
		"style":    st.kind.String(),
		"delay_ms": delayMillis,
		"failure":  failure,
	}).Debug("mock call dispatched")
}

// safeCall invokes fn with args, converting a panic in the implementation
// into a raised error.
func safeCall(fn reflect.Value, args []reflect.Value) (out []reflect.Value, raised error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			raised = raisedError(r)
		}
	}()
	if fn.Type().IsVariadic() {
		return fn.CallSlice(args), nil
	}
	return fn.Call(args), nil
}

// takeError extracts a non-nil trailing error result, if the signature has
// one.
func (st *methodStyle) takeError(out []reflect.Value) error {
	if st.errOut < 0 || st.errOut >= len(out) {
		return nil
	}
	v := out[st.errOut]
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

// failureResults builds the result list for a failed call: zero values
// everywhere, with err in the error position.
func (st *methodStyle) failureResults(err error) []reflect.Value {
	out := zeroResults(st.fnType)
	if st.errOut >= 0 && err != nil {
		ev := reflect.New(errorType).Elem()
		ev.Set(reflect.ValueOf(err))
		out[st.errOut] = ev
	}
	return out
}

// zeroResults builds a zero value for every result of ft.
func zeroResults(ft reflect.Type) []reflect.Value {
	out := make([]reflect.Value, ft.NumOut())
	for i := range out {
		out[i] = reflect.Zero(ft.Out(i))
	}
	return out
}

// collector is the substitute callback handed to the real implementation for
// callback-style methods. It records the first delivery so the engine can
// redirect it through the delivery executor.
type collector struct {
	value reflect.Value

	mu       sync.Mutex
	done     bool
	success  bool
	result   reflect.Value
	response reflect.Value
	failure  reflect.Value
}

// newCollector builds a collector matching the declared callback parameter
// type (struct or pointer to struct).
func newCollector(cbType reflect.Type) *collector {
	base := cbType
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	c := &collector{}
	nv := reflect.New(base)

	onSuccess, _ := base.FieldByName("OnSuccess")
	nv.Elem().FieldByName("OnSuccess").Set(reflect.MakeFunc(onSuccess.Type, func(in []reflect.Value) []reflect.Value {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.done {
			c.done, c.success = true, true
			c.result, c.response = in[0], in[1]
		}
		return nil
	}))

	onFailure, _ := base.FieldByName("OnFailure")
	nv.Elem().FieldByName("OnFailure").Set(reflect.MakeFunc(onFailure.Type, func(in []reflect.Value) []reflect.Value {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.done {
			c.done = true
			c.failure = in[0]
		}
		return nil
	}))

	if cbType.Kind() == reflect.Pointer {
		c.value = nv
	} else {
		c.value = nv.Elem()
	}
	return c
}

// redeliver forwards the collected outcome to the user callback on the
// delivery executor. A call whose implementation never invoked its callback
// delivers nothing, matching the real transport's behavior for a response
// that never arrives.
func (c *collector) redeliver(delivery client.Executor, userCB reflect.Value) {
	c.mu.Lock()
	done, success := c.done, c.success
	result, response, failure := c.result, c.response, c.failure
	c.mu.Unlock()
	if !done {
		return
	}
	if success {
		delivery.Execute(func() {
			callOnSuccess(userCB, result, response)
		})
		return
	}
	delivery.Execute(func() {
		callOnFailure(userCB, failure)
	})
}

// callbackField resolves a func field on a callback value, dereferencing a
// pointer callback first. It returns an invalid value for a nil callback.
func callbackField(cb reflect.Value, name string) reflect.Value {
	v := cb
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v.FieldByName(name)
}

// callOnSuccess invokes the callback's OnSuccess func if it is set.
func callOnSuccess(cb, result, response reflect.Value) {
	fn := callbackField(cb, "OnSuccess")
	if fn.IsValid() && !fn.IsNil() {
		fn.Call([]reflect.Value{result, response})
	}
}

// callOnFailure invokes the callback's OnFailure func if it is set.
func callOnFailure(cb, err reflect.Value) {
	fn := callbackField(cb, "OnFailure")
	if fn.IsValid() && !fn.IsNil() {
		fn.Call([]reflect.Value{err})
	}
}

// drainSingle synchronously extracts the value or terminal error from a
// produced single by subscribing with reflectively-built handlers. Singles
// produced by an implementation are immediate, so the subscription completes
// inline.
func drainSingle(single reflect.Value) (any, error) {
	sub := single.MethodByName("Subscribe")
	var value any
	var terminal error
	onSuccess := reflect.MakeFunc(sub.Type().In(0), func(in []reflect.Value) []reflect.Value {
		value = in[0].Interface()
		return nil
	})
	onError := reflect.ValueOf(func(err error) {
		terminal = err
	})
	sub.Call([]reflect.Value{onSuccess, onError})
	return value, terminal
}
