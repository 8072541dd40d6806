// Package reflectx provides the generic reflection plumbing used by the
// composition engines: overload resolution, accessor discovery, and
// coercing func invocation.
package reflectx

import (
	"fmt"
	"reflect"
)

// MethodsNamed collects the methods of the given name in typ's own
// method set. Go method names are unique per method set, so at most one
// candidate comes back; the list form keeps the resolver's ranking
// interface uniform. Pass a pointer type to reach pointer-receiver
// methods.
func MethodsNamed(typ reflect.Type, name string) []reflect.Method {
	if m, ok := typ.MethodByName(name); ok {
		return []reflect.Method{m}
	}

	return nil
}

// ResolveOverload picks the candidate whose signature best matches the
// wanted func type (receiver excluded from the candidate's parameter
// list). A candidate with any incompatible parameter or result is
// skipped. Returns false if no candidate fits.
func ResolveOverload(candidates []reflect.Method, want reflect.Type) (reflect.Method, bool) {
	best := -1
	bestScore := Incompatible.Score()

	for i, m := range candidates {
		score, ok := scoreSignature(m.Type, want)
		if ok && (best < 0 || score > bestScore) {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return reflect.Method{}, false
	}

	return candidates[best], true
}

// scoreSignature scores a method signature (with receiver) against a
// wanted func type (without receiver). The score is the worst parameter
// compatibility; results must be assignable back to the wanted results.
func scoreSignature(method, want reflect.Type) (int, bool) {
	if method.NumIn()-1 != want.NumIn() || method.NumOut() != want.NumOut() {
		return 0, false
	}

	if method.IsVariadic() != want.IsVariadic() {
		return 0, false
	}

	score := Identical.Score()

	for i := 0; i < want.NumIn(); i++ {
		c := ScoreType(want.In(i), method.In(i+1))
		if c == Incompatible {
			return 0, false
		}

		if c.Score() < score {
			score = c.Score()
		}
	}

	for i := 0; i < want.NumOut(); i++ {
		if ScoreType(method.Out(i), want.Out(i)) < Assignable {
			return 0, false
		}
	}

	return score, true
}

// Coerce adapts a value to the target type: direct assignment when
// assignable, explicit conversion when convertible.
func Coerce(v any, target reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch target.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface,
			reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(target), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot use nil as %s", target)
		}
	}

	rv := reflect.ValueOf(v)

	switch ScoreType(rv.Type(), target) {
	case Identical, Assignable:
		return rv, nil
	case Convertible:
		return rv.Convert(target), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", rv.Type(), target)
	}
}
