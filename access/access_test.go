package access_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/access"
)

type account struct {
	Owner   string
	balance int64
}

func TestGetExportedField(t *testing.T) {
	a := &account{Owner: "ada"}

	v, err := access.Get(reflect.TypeOf(a), "Owner", a)
	require.NoError(t, err)
	assert.Equal(t, "ada", v)
}

func TestUnexportedFieldRoundTrip(t *testing.T) {
	a := &account{}
	typ := reflect.TypeOf(a)

	require.NoError(t, access.Set(typ, "balance", a, int64(250)))

	v, err := access.Get(typ, "balance", a)
	require.NoError(t, err)
	assert.Equal(t, int64(250), v)

	// second access hits the compiled accessor cache
	v, err = access.Get(typ, "balance", a)
	require.NoError(t, err)
	assert.Equal(t, int64(250), v)
}

func TestSetCoercesValue(t *testing.T) {
	a := &account{}
	typ := reflect.TypeOf(a)

	require.NoError(t, access.Set(typ, "balance", a, 7)) // int -> int64
	assert.Equal(t, int64(7), a.balance)
}

func TestNilInstance(t *testing.T) {
	typ := reflect.TypeOf(&account{})

	_, err := access.Get(typ, "Owner", nil)
	assert.ErrorIs(t, err, access.ErrNilInstance)

	err = access.Set(typ, "Owner", nil, "x")
	assert.ErrorIs(t, err, access.ErrNilInstance)

	var a *account
	_, err = access.Get(typ, "Owner", a)
	assert.ErrorIs(t, err, access.ErrNilInstance)
}

func TestMemberNotFound(t *testing.T) {
	a := &account{}

	_, err := access.Get(reflect.TypeOf(a), "Missing", a)
	assert.ErrorIs(t, err, access.ErrMemberNotFound)
}

func TestUnexportedNeedsAddressableInstance(t *testing.T) {
	a := account{balance: 5}

	// a value instance exposes no address for its unexported fields
	_, err := access.Get(reflect.TypeOf(a), "balance", a)
	assert.ErrorIs(t, err, access.ErrNotAddressable)
}
