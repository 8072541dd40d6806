package bind_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeforge/bind"
	"typeforge/member"
)

func TestValuesAllNamed(t *testing.T) {
	nodes, err := bind.Values([]any{"Ada", 36}, []string{"Name", "Age"})
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "Name", nodes[0].Name)
	assert.Equal(t, "Ada", nodes[0].Value)
	assert.Equal(t, member.KindUnknown, nodes[0].DeclaredKind)
	assert.Equal(t, "Age", nodes[1].Name)
	assert.Equal(t, 36, nodes[1].Value)
}

func TestValuesTrailingNameWithSelfDescribing(t *testing.T) {
	// 3 arguments, 1 declared name, 2 already self-describing: the name
	// pairs with the sole plain argument.
	args := []any{
		member.ValueNode{Name: "First", Value: 1},
		&member.ValueNode{Name: "Second", DeclaredKind: member.KindField, Value: 2},
		3,
	}

	nodes, err := bind.Values(args, []string{"Third"})
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.Equal(t, "First", nodes[0].Name)
	assert.Equal(t, "Second", nodes[1].Name)
	assert.Equal(t, member.KindField, nodes[1].DeclaredKind)
	assert.Equal(t, "Third", nodes[2].Name)
	assert.Equal(t, 3, nodes[2].Value)
}

func TestValuesUnexplainedArgument(t *testing.T) {
	// 3 plain arguments, 1 name: the two leading arguments cannot be
	// explained by the trailing name.
	_, err := bind.Values([]any{1, 2, 3}, []string{"Third"})

	var bindErr *bind.Error
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, 1, bindErr.Index)
}

func TestSchemaKinds(t *testing.T) {
	double := func(x int) int { return 2 * x }

	args := []any{
		double,
		reflect.TypeOf(double),
		reflect.TypeOf(""),
		member.SchemaNode{Name: "Given", Kind: member.KindField, Type: reflect.TypeOf(0)},
	}

	nodes, err := bind.Schema(args, []string{"Double", "Halve", "Label", "ignored"})
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	assert.Equal(t, member.KindMethod, nodes[0].Kind)
	assert.Equal(t, "Double", nodes[0].Name)
	assert.NotNil(t, nodes[0].Body)

	assert.Equal(t, member.KindEmptyMethod, nodes[1].Kind)
	assert.True(t, nodes[1].Virtual)

	assert.Equal(t, member.KindProperty, nodes[2].Kind)
	assert.Equal(t, reflect.TypeOf(""), nodes[2].Type)

	assert.Equal(t, "Given", nodes[3].Name)
	assert.Equal(t, member.KindField, nodes[3].Kind)
}

func TestSchemaRejectsPlainValue(t *testing.T) {
	_, err := bind.Schema([]any{42}, []string{"Answer"})

	var bindErr *bind.Error
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, 0, bindErr.Index)
}

func TestErrorMessage(t *testing.T) {
	_, err := bind.Values([]any{1}, nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*bind.Error)))
	assert.Contains(t, err.Error(), "argument 0")
}
