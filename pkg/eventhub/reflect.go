// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// HandlerOf converts v into a Handler. It accepts *Handler, Func,
// func(...any) error, func(...any), func() and any other function value.
// Other functions are called through reflection: emitted arguments are
// converted to the parameter types (missing ones become zero values, extra
// ones are dropped) and a trailing error result is returned from the call.
//
// Values that are not functions yield an *InvalidHandlerError.
func HandlerOf(v any) (*Handler, error) {
	switch fn := v.(type) {
	case nil:
		return nil, &InvalidHandlerError{Type: "nil"}
	case *Handler:
		if err := validateHandler(fn); err != nil {
			return nil, err
		}
		return fn, nil
	case Func:
		if fn == nil {
			return nil, &InvalidHandlerError{Type: fmt.Sprintf("%T", v)}
		}
		return NewHandler(fn), nil
	case func(...any) error:
		if fn == nil {
			return nil, &InvalidHandlerError{Type: fmt.Sprintf("%T", v)}
		}
		return NewHandler(fn), nil
	case func(...any):
		if fn == nil {
			return nil, &InvalidHandlerError{Type: fmt.Sprintf("%T", v)}
		}
		return NewHandler(func(args ...any) error {
			fn(args...)
			return nil
		}), nil
	case func():
		if fn == nil {
			return nil, &InvalidHandlerError{Type: fmt.Sprintf("%T", v)}
		}
		return NewHandler(func(...any) error {
			fn()
			return nil
		}), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, &InvalidHandlerError{Type: fmt.Sprintf("%T", v)}
	}
	return NewHandler(reflectFunc(rv)), nil
}

// MustHandler is like HandlerOf but panics on error.
func MustHandler(v any) *Handler {
	h, err := HandlerOf(v)
	if err != nil {
		panic(err)
	}
	return h
}

func reflectFunc(fn reflect.Value) Func {
	ft := fn.Type()
	return func(args ...any) error {
		in, err := callArgs(ft, args)
		if err != nil {
			return err
		}
		out := fn.Call(in)
		if n := ft.NumOut(); n > 0 && ft.Out(n-1) == errorType {
			if last := out[n-1]; !last.IsNil() {
				return last.Interface().(error)
			}
		}
		return nil
	}
}

func callArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}

	in := make([]reflect.Value, 0, max(fixed, len(args)))
	for i := 0; i < fixed; i++ {
		var arg any
		if i < len(args) {
			arg = args[i]
		}
		v, err := convertArg(arg, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrArgumentMismatch, i, err)
		}
		in = append(in, v)
	}

	if ft.IsVariadic() {
		elem := ft.In(fixed).Elem()
		for i := fixed; i < len(args); i++ {
			v, err := convertArg(args[i], elem)
			if err != nil {
				return nil, fmt.Errorf("%w: argument %d: %v", ErrArgumentMismatch, i, err)
			}
			in = append(in, v)
		}
	}
	return in, nil
}

func convertArg(arg any, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	var (
		converted any
		err       error
	)
	switch t.Kind() {
	case reflect.String:
		converted, err = cast.ToStringE(arg)
	case reflect.Bool:
		converted, err = cast.ToBoolE(arg)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		converted, err = cast.ToInt64E(arg)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		converted, err = cast.ToUint64E(arg)
	case reflect.Float32, reflect.Float64:
		converted, err = cast.ToFloat64E(arg)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			converted, err = cast.ToStringSliceE(arg)
		} else if v.Type().ConvertibleTo(t) {
			return v.Convert(t), nil
		} else {
			err = fmt.Errorf("cannot use %T as %s", arg, t)
		}
	case reflect.Map:
		if t.Key().Kind() == reflect.String && t.Elem().Kind() == reflect.Interface && t.Elem().NumMethod() == 0 {
			converted, err = cast.ToStringMapE(arg)
		} else if v.Type().ConvertibleTo(t) {
			return v.Convert(t), nil
		} else {
			err = fmt.Errorf("cannot use %T as %s", arg, t)
		}
	default:
		if v.Type().ConvertibleTo(t) {
			return v.Convert(t), nil
		}
		err = fmt.Errorf("cannot use %T as %s", arg, t)
	}
	if err != nil {
		return reflect.Value{}, err
	}
	if overflows(converted, t) {
		return reflect.Value{}, fmt.Errorf("%v overflows %s", arg, t)
	}
	return reflect.ValueOf(converted).Convert(t), nil
}

// overflows reports whether a widened numeric cast result does not fit t.
func overflows(converted any, t reflect.Type) bool {
	zero := reflect.Zero(t)
	switch x := converted.(type) {
	case int64:
		return zero.OverflowInt(x)
	case uint64:
		return zero.OverflowUint(x)
	case float64:
		return zero.OverflowFloat(x)
	}
	return false
}
