package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gossip/rational"
	"gossip/value"
)

func TestEqualAcrossKinds(t *testing.T) {
	n1 := value.NewNumber(rational.FromInt64(5))
	n2 := value.NewNumber(rational.FromInt64(5))
	assert.True(t, n1.Equal(n2))

	b := value.NewBool(true)
	assert.False(t, n1.Equal(b))
}

func TestListEquality(t *testing.T) {
	l1 := value.NewList([]value.Value{value.NewNumber(rational.FromInt64(1)), value.NewNumber(rational.FromInt64(2))})
	l2 := value.NewList([]value.Value{value.NewNumber(rational.FromInt64(1)), value.NewNumber(rational.FromInt64(2))})
	l3 := value.NewList([]value.Value{value.NewNumber(rational.FromInt64(1))})
	assert.True(t, l1.Equal(l2))
	assert.False(t, l1.Equal(l3))
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "5", value.NewNumber(rational.FromInt64(5)).String())
	assert.Equal(t, "true", value.NewBool(true).String())
	assert.Equal(t, "hi", value.NewString("hi").String())
	assert.Equal(t, "[1, 2]", value.NewList([]value.Value{
		value.NewNumber(rational.FromInt64(1)), value.NewNumber(rational.FromInt64(2)),
	}).String())
	assert.Equal(t, "unit", value.NewUnit().String())
}

func TestListElemTag(t *testing.T) {
	numbers := value.NewList([]value.Value{value.NewNumber(rational.FromInt64(1))})
	assert.Equal(t, "Number", numbers.ElemTag)

	empty := value.NewList(nil)
	assert.Equal(t, "", empty.ElemTag)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Number", value.NewNumber(rational.FromInt64(1)).TypeName())
	assert.Equal(t, "Bool", value.NewBool(false).TypeName())
	assert.Equal(t, "String", value.NewString("a").TypeName())
}
