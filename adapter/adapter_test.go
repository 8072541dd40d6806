package adapter_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/adapter"
	"typeforge/forge"
	"typeforge/internal/testutil"
	"typeforge/member"
)

type pump struct {
	Model  string
	serial string
	speed  int
}

func (p *pump) Start(level int) string {
	p.speed = level

	return p.Model + " running"
}

func (p *pump) Speed() int     { return p.speed }
func (p *pump) SetSpeed(v int) { p.speed = v }

var (
	stringT = reflect.TypeOf("")
	intT    = reflect.TypeOf(0)
	pumpT   = reflect.TypeOf(&pump{})
)

func pumpContract() *forge.Contract {
	return &forge.Contract{Name: "Pump", Members: []member.SchemaNode{
		{Name: "Start", Kind: member.KindEmptyMethod, Type: reflect.TypeOf(func(int) string { return "" })},
		{Name: "Model", Kind: member.KindProperty, Type: stringT},
		{Name: "Speed", Kind: member.KindProperty, Type: intT},
		{Name: "Serial", Kind: member.KindProperty, Type: stringT},
	}}
}

func TestCallForwardsToTarget(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("CallForward", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	a, err := typ.Wrap(&pump{Model: "P-100"})
	require.NoError(t, err)

	out, err := a.Call("Start", 3)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "P-100 running", out[0])

	v, err := a.Get("Speed")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestPropertyViaExportedField(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("FieldProp", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	p := &pump{Model: "P-100"}
	a, err := typ.Wrap(p)
	require.NoError(t, err)

	v, err := a.Get("Model")
	require.NoError(t, err)
	assert.Equal(t, "P-100", v)

	require.NoError(t, a.Set("Model", "P-200"))
	assert.Equal(t, "P-200", p.Model)
}

func TestPropertyViaAccessorMethods(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("MethodProp", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	p := &pump{}
	a, err := typ.Wrap(p)
	require.NoError(t, err)

	require.NoError(t, a.Set("Speed", 9))
	assert.Equal(t, 9, p.speed)

	v, err := a.Get("Speed")
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestPropertyViaHiddenField(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("HiddenProp", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	p := &pump{serial: "SN-1"}
	a, err := typ.Wrap(p)
	require.NoError(t, err)

	v, err := a.Get("Serial")
	require.NoError(t, err)
	assert.Equal(t, "SN-1", v)

	require.NoError(t, a.Set("Serial", "SN-2"))
	assert.Equal(t, "SN-2", p.serial)
}

func TestMissingMemberPolicies(t *testing.T) {
	contract := &forge.Contract{Name: "Extended", Members: []member.SchemaNode{
		{Name: "Flush", Kind: member.KindEmptyMethod, Type: reflect.TypeOf(func() int { return 0 })},
		{Name: "Rating", Kind: member.KindProperty, Type: intT},
	}}

	reg := adapter.NewRegistry(nil)

	failing, err := reg.Compose("ExtendedFail", contract, pumpT, adapter.Fail)
	require.NoError(t, err)

	a, err := failing.Wrap(&pump{})
	require.NoError(t, err)

	var aerr *adapter.AdapterError
	_, err = a.Call("Flush")
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Flush", aerr.Member)

	_, err = a.Get("Rating")
	assert.ErrorAs(t, err, &aerr)

	defaulting, err := reg.Compose("ExtendedDefault", contract, pumpT, adapter.Default)
	require.NoError(t, err)

	a, err = defaulting.Wrap(&pump{})
	require.NoError(t, err)

	out, err := a.Call("Flush")
	require.NoError(t, err)
	assert.Equal(t, []any{0}, out)

	v, err := a.Get("Rating")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	assert.NoError(t, a.Set("Rating", 5))
}

func TestWrapNilTarget(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("NilWrap", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	_, err = typ.Wrap(nil)
	assert.ErrorIs(t, err, adapter.ErrNilTarget)
}

func TestWrapWrongType(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("WrongWrap", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	var aerr *adapter.AdapterError
	_, err = typ.Wrap("not a pump")
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "WrongWrap", aerr.Adapter)
}

func TestEventContractRejected(t *testing.T) {
	contract := &forge.Contract{Name: "Evented", Members: []member.SchemaNode{
		{Name: "Ping", Kind: member.KindEvent},
	}}

	reg := adapter.NewRegistry(nil)

	var aerr *adapter.AdapterError
	_, err := reg.Compose("Evented", contract, pumpT, adapter.Fail)
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Ping", aerr.Member)
}

func TestComposeCachesByName(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	first, err := reg.Compose("Cached", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	// shape differences are ignored on a cache hit
	second, err := reg.Compose("Cached", pumpContract(), pumpT, adapter.Default)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, adapter.Fail, second.Policy())
	assert.Equal(t, []string{"Cached"}, reg.Names())
}

func TestDefaultRegistry(t *testing.T) {
	typ, err := adapter.Compose("DefaultRegistryProbe", pumpContract(), pumpT, adapter.Default)
	require.NoError(t, err)
	assert.Equal(t, adapter.Default, typ.Policy())

	cached, ok := adapter.DefaultRegistry().Lookup("DefaultRegistryProbe")
	require.True(t, ok)
	assert.Same(t, typ, cached)
}

func TestRegistryConcurrentCompose(t *testing.T) {
	reg := adapter.NewRegistry(testutil.NewTestLogger(t))

	const workers = 16

	var (
		wg  sync.WaitGroup
		got [workers]*adapter.Type
	)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			typ, err := reg.Compose("Shared", pumpContract(), pumpT, adapter.Fail)
			assert.NoError(t, err)

			got[i] = typ
		}()
	}

	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestUnwrap(t *testing.T) {
	reg := adapter.NewRegistry(nil)

	typ, err := reg.Compose("Unwrap", pumpContract(), pumpT, adapter.Fail)
	require.NoError(t, err)

	p := &pump{}
	a, err := typ.Wrap(p)
	require.NoError(t, err)

	assert.Same(t, p, a.Unwrap())
}
