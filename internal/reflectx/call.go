package reflectx

import (
	"fmt"
	"reflect"
)

// CallFunc invokes fn with args coerced to its parameter types and
// returns the results as plain values. Variadic funcs are invoked with
// the tail spread into the variadic parameter.
func CallFunc(fn reflect.Value, args []any) ([]any, error) {
	ft := fn.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("call target is %s, not a func", ft)
	}

	if ft.IsVariadic() {
		if len(args) < ft.NumIn()-1 {
			return nil, fmt.Errorf("call needs at least %d args, got %d", ft.NumIn()-1, len(args))
		}
	} else if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("call needs %d args, got %d", ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))

	for i, a := range args {
		target := paramType(ft, i)

		v, err := Coerce(a, target)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}

		in[i] = v
	}

	out := fn.Call(in)

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	return results, nil
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}

	return ft.In(i)
}

// ZeroResults returns the zero value for every result of the func type.
// Used by no-op method stubs and default-returning adapter stubs.
func ZeroResults(ft reflect.Type) []any {
	out := make([]any, ft.NumOut())
	for i := range out {
		out[i] = reflect.Zero(ft.Out(i)).Interface()
	}

	return out
}
