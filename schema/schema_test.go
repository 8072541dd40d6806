package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/forge"
	"typeforge/member"
	"typeforge/schema"
)

func TestParseDefaults(t *testing.T) {
	f, err := schema.Parse([]byte(`
types:
  - name: Point
    members:
      - name: X
        type: float64
      - name: Y
        type: float64
`))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Types, 1)
	assert.Equal(t, "property", f.Types[0].Members[0].Kind)
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"bad version", "version: \"2\"\ntypes: []"},
		{"nameless type", "types:\n  - members: []"},
		{"duplicate type", "types:\n  - name: A\n  - name: A"},
		{"typeless property", "types:\n  - name: A\n    members:\n      - name: X"},
		{"typed event", "types:\n  - name: A\n    members:\n      - name: X\n        kind: event\n        type: int"},
		{"unknown kind", "types:\n  - name: A\n    members:\n      - name: X\n        kind: slot\n        type: int"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApplyFile(t *testing.T) {
	f, err := schema.LoadFile("testdata/types.yaml")
	require.NoError(t, err)

	reg := forge.NewRegistry(nil)

	composed, err := f.Apply(reg, nil, nil)
	require.NoError(t, err)
	require.Len(t, composed, 2)

	entity, ok := reg.Lookup("Entity")
	require.True(t, ok)
	assert.Same(t, entity, composed[0])

	user, ok := reg.Lookup("User")
	require.True(t, ok)
	assert.Same(t, entity, user.Base())
	assert.True(t, user.Serializable())
	assert.True(t, user.Notifying())

	m, ok := user.Member("Deleted")
	require.True(t, ok)
	assert.Equal(t, member.KindEvent, m.Kind)

	// inherited member is reachable on the derived type
	_, ok = user.Member("ID")
	assert.True(t, ok)

	in, err := reg.Construct("User", []member.ValueNode{
		{Name: "Name", Value: "ada"},
		{Name: "Age", Value: 36},
	})
	require.NoError(t, err)

	v, err := in.Get("Age")
	require.NoError(t, err)
	assert.Equal(t, 36, v)
}

func TestApplyUnknownBase(t *testing.T) {
	f, err := schema.Parse([]byte(`
types:
  - name: Orphan
    base: Missing
    members:
      - name: X
        type: int
`))
	require.NoError(t, err)

	_, err = f.Apply(forge.NewRegistry(nil), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `base "Missing"`)
}

func TestApplyUnknownContract(t *testing.T) {
	f, err := schema.Parse([]byte(`
types:
  - name: Capable
    contracts: [Shiny]
    members:
      - name: X
        type: int
`))
	require.NoError(t, err)

	_, err = f.Apply(forge.NewRegistry(nil), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown contract "Shiny"`)
}

func TestApplyUnknownMemberType(t *testing.T) {
	f, err := schema.Parse([]byte(`
types:
  - name: Odd
    members:
      - name: X
        type: quaternion
`))
	require.NoError(t, err)

	_, err = f.Apply(forge.NewRegistry(nil), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "quaternion"`)
}

func TestMarshalRoundTrip(t *testing.T) {
	f, err := schema.LoadFile("testdata/types.yaml")
	require.NoError(t, err)

	data, err := schema.Marshal(f)
	require.NoError(t, err)

	again, err := schema.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}
