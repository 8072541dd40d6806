package forge_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/forge"
	"typeforge/internal/testutil"
	"typeforge/member"
)

func TestRegistryConcurrentCompose(t *testing.T) {
	reg := forge.NewRegistry(testutil.NewTestLogger(t))

	const workers = 16

	var (
		wg  sync.WaitGroup
		got [workers]*forge.Type
	)

	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)

		go func() {
			defer wg.Done()

			typ, err := reg.Compose("Shared", []member.SchemaNode{
				property("Name", stringT),
			}, forge.Options{})
			assert.NoError(t, err)

			got[i] = typ
		}()
	}

	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := forge.NewRegistry(nil)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := reg.Compose(name, []member.SchemaNode{property("Name", stringT)}, forge.Options{})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, reg.Names())
}

func TestRegistryFailedComposeNotCached(t *testing.T) {
	reg := forge.NewRegistry(nil)

	_, err := reg.Compose("Broken", []member.SchemaNode{
		property("Name", stringT),
		property("Name", stringT),
	}, forge.Options{})
	require.Error(t, err)

	_, ok := reg.Lookup("Broken")
	assert.False(t, ok)

	// the name stays available for a corrected request
	typ, err := reg.Compose("Broken", []member.SchemaNode{property("Name", stringT)}, forge.Options{})
	require.NoError(t, err)
	assert.NotNil(t, typ)
}

func TestDefaultRegistry(t *testing.T) {
	typ, err := forge.Compose("DefaultRegistryProbe", []member.SchemaNode{
		property("Name", stringT),
	}, forge.Options{})
	require.NoError(t, err)

	cached, ok := forge.Default().Lookup("DefaultRegistryProbe")
	require.True(t, ok)
	assert.Same(t, typ, cached)
}
