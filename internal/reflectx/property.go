package reflectx

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AccessPath tells how a property accessor reaches the target member.
type AccessPath int

const (
	// AccessNone means no matching member exists on the target.
	AccessNone AccessPath = iota
	// AccessField is a directly reachable exported field.
	AccessField
	// AccessMethod is a directly reachable accessor method.
	AccessMethod
	// AccessHidden is an unexported field, reachable only through the
	// late-bound access helper.
	AccessHidden
)

// String returns a human-readable path name.
func (p AccessPath) String() string {
	switch p {
	case AccessField:
		return "field"
	case AccessMethod:
		return "method"
	case AccessHidden:
		return "hidden"
	case AccessNone:
		return "none"
	default:
		return "unknown"
	}
}

// Accessor is one resolved read or write path for a property.
type Accessor struct {
	Path   AccessPath
	Field  reflect.StructField // AccessField and AccessHidden
	Method reflect.Method      // AccessMethod
}

// ReadAccessor resolves how a property named name of the given value type
// can be read from the target type. Accessor methods win over fields:
// Get<Name>() or <Name>() with a single compatible result.
func ReadAccessor(target reflect.Type, name string, typ reflect.Type) Accessor {
	for _, candidate := range []string{"Get" + name, name} {
		for _, m := range MethodsNamed(target, candidate) {
			if m.Type.NumIn() == 1 && m.Type.NumOut() == 1 && resultFits(m.Type.Out(0), typ) {
				return Accessor{Path: AccessMethod, Method: m}
			}
		}
	}

	return fieldAccessor(target, name)
}

// WriteAccessor resolves how a property named name of the given value
// type can be written on the target type. Set<Name> with one compatible
// parameter wins over fields.
func WriteAccessor(target reflect.Type, name string, typ reflect.Type) Accessor {
	for _, m := range MethodsNamed(target, "Set"+name) {
		if m.Type.NumIn() == 2 && m.Type.NumOut() <= 1 && paramFits(typ, m.Type.In(1)) {
			return Accessor{Path: AccessMethod, Method: m}
		}
	}

	return fieldAccessor(target, name)
}

func fieldAccessor(target reflect.Type, name string) Accessor {
	st := target
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}

	if st.Kind() != reflect.Struct {
		return Accessor{}
	}

	if f, ok := st.FieldByName(name); ok && f.IsExported() {
		return Accessor{Path: AccessField, Field: f}
	}

	// An unexported field of the same spelling (canonically with a
	// lowered first rune) is reachable only through the access helper.
	for _, candidate := range []string{lowerFirst(name), name} {
		if f, ok := st.FieldByName(candidate); ok && !f.IsExported() {
			return Accessor{Path: AccessHidden, Field: f}
		}
	}

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() && strings.EqualFold(f.Name, name) {
			return Accessor{Path: AccessHidden, Field: f}
		}
	}

	return Accessor{}
}

func resultFits(got, want reflect.Type) bool {
	return want == nil || ScoreType(got, want) >= Assignable
}

func paramFits(want, param reflect.Type) bool {
	return want == nil || ScoreType(want, param) != Incompatible
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsLower(r) {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
