package mocknet

import (
	"fmt"
	"reflect"

	"github.com/guoGavin/retrofit/pkg/client"
)

// styleKind is the invocation convention of a service method, derived once
// from its declared signature and cached per service type.
type styleKind int

const (
	// styleOpaque marks non-func fields, copied to the proxy untouched.
	styleOpaque styleKind = iota
	styleSynchronous
	styleCallback
	styleStream
)

// String implements fmt.Stringer.
func (k styleKind) String() string {
	switch k {
	case styleSynchronous:
		return "synchronous"
	case styleCallback:
		return "callback"
	case styleStream:
		return "stream"
	default:
		return "opaque"
	}
}

// methodStyle is the per-field classification record: the convention, the
// declared success type, and the signature positions the dispatcher needs.
type methodStyle struct {
	name        string
	kind        styleKind
	fnType      reflect.Type
	successType reflect.Type

	// callback style: index and declared type of the trailing callback
	// parameter.
	cbIndex int
	cbType  reflect.Type

	// index of the trailing error result, -1 when the signature has none.
	errOut int

	// stream style: the declared single return type (a pointer).
	streamType reflect.Type
}

// streamBinder is the wiring hook a lazy single return type must expose so
// the dispatcher can assemble one reflectively. *client.Single[T] implements
// it.
type streamBinder interface {
	Bind(exec client.Executor, run func() (any, error))
}

var (
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
	responseType   = reflect.TypeOf((*client.Response)(nil))
	clientErrType  = reflect.TypeOf((*client.Error)(nil))
	binderType     = reflect.TypeOf((*streamBinder)(nil)).Elem()
	errHandlerType = reflect.TypeOf((func(error))(nil))
)

// callbackShape reports whether t is callback-shaped: a struct (or pointer to
// struct) with func fields OnSuccess(T, *client.Response) and
// OnFailure(*client.Error). It returns the success type T on a match.
// Matching by shape rather than by named type lets service definitions use
// their own callback structs, including ones embedding client.Callback.
func callbackShape(t reflect.Type) (reflect.Type, bool) {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, false
	}
	onSuccess, ok := st.FieldByName("OnSuccess")
	if !ok || onSuccess.Type.Kind() != reflect.Func {
		return nil, false
	}
	ft := onSuccess.Type
	if ft.NumIn() != 2 || ft.NumOut() != 0 || ft.In(1) != responseType {
		return nil, false
	}
	onFailure, ok := st.FieldByName("OnFailure")
	if !ok || onFailure.Type.Kind() != reflect.Func {
		return nil, false
	}
	gt := onFailure.Type
	if gt.NumIn() != 1 || gt.NumOut() != 0 || gt.In(0) != clientErrType {
		return nil, false
	}
	return ft.In(0), true
}

// streamShape reports whether t is a lazy single return type: a pointer
// implementing streamBinder with a Subscribe(func(T), func(error)) method. It
// returns the element type T on a match.
func streamShape(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Pointer || !t.Implements(binderType) {
		return nil, false
	}
	sub, ok := t.MethodByName("Subscribe")
	if !ok {
		return nil, false
	}
	ft := sub.Type
	// Receiver plus the two handlers.
	if ft.NumIn() != 3 || ft.NumOut() != 0 {
		return nil, false
	}
	onSuccess := ft.In(1)
	if onSuccess.Kind() != reflect.Func || onSuccess.NumIn() != 1 || onSuccess.NumOut() != 0 {
		return nil, false
	}
	if ft.In(2) != errHandlerType {
		return nil, false
	}
	return onSuccess.In(0), true
}

// classifyService derives the methodStyle for every field of a service
// definition type (a pointer to a struct of exported func fields).
func classifyService(t reflect.Type) ([]methodStyle, error) {
	st := t.Elem()
	styles := make([]methodStyle, st.NumField())
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			return nil, fmt.Errorf("service field %s.%s is unexported", st.Name(), field.Name)
		}
		if field.Type.Kind() != reflect.Func {
			styles[i] = methodStyle{name: field.Name, kind: styleOpaque, fnType: field.Type}
			continue
		}
		ms, err := classifyMethod(field.Name, field.Type)
		if err != nil {
			return nil, err
		}
		styles[i] = ms
	}
	return styles, nil
}

// classifyMethod classifies a single func field signature.
func classifyMethod(name string, ft reflect.Type) (methodStyle, error) {
	ms := methodStyle{name: name, fnType: ft, errOut: -1}

	if n := ft.NumIn(); n > 0 {
		if succ, ok := callbackShape(ft.In(n - 1)); ok {
			ms.kind = styleCallback
			ms.successType = succ
			ms.cbIndex = n - 1
			ms.cbType = ft.In(n - 1)
			switch ft.NumOut() {
			case 0:
			case 1:
				if ft.Out(0) != errorType {
					return ms, fmt.Errorf("callback method %s may only return error, got %s", name, ft.Out(0))
				}
				ms.errOut = 0
			default:
				return ms, fmt.Errorf("callback method %s may only return error", name)
			}
			return ms, nil
		}
	}

	if ft.NumOut() == 1 {
		if elem, ok := streamShape(ft.Out(0)); ok {
			ms.kind = styleStream
			ms.successType = elem
			ms.streamType = ft.Out(0)
			return ms, nil
		}
	}

	if ft.NumOut() == 0 || ft.Out(ft.NumOut()-1) != errorType {
		return ms, fmt.Errorf("synchronous method %s must return error as its last result", name)
	}
	ms.kind = styleSynchronous
	ms.errOut = ft.NumOut() - 1
	if ft.NumOut() > 1 {
		ms.successType = ft.Out(0)
	}
	return ms, nil
}
