package rational_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/rational"
)

func TestArithmetic(t *testing.T) {
	a := rational.FromInt64(3)
	b := rational.FromInt64(4)

	assert.Equal(t, "7", a.Add(b).String())
	assert.Equal(t, "-1", a.Sub(b).String())
	assert.Equal(t, "12", a.Mul(b).String())
	assert.Equal(t, "3/4", a.Div(b).String())
}

func TestParseFraction(t *testing.T) {
	r, err := rational.Parse("3.14")
	require.NoError(t, err)
	assert.False(t, r.IsIntegral())

	r2, err := rational.Parse("5")
	require.NoError(t, err)
	assert.True(t, r2.IsIntegral())
	assert.Equal(t, int64(5), r2.Int64())
}

func TestQuotRem(t *testing.T) {
	a := rational.FromInt64(7)
	b := rational.FromInt64(2)
	assert.Equal(t, "3", a.Quot(b).String())
	assert.Equal(t, "1", a.Rem(b).String())
}

func TestCmpAndEqual(t *testing.T) {
	a := rational.FromInt64(2)
	b := rational.FromInt64(3)
	assert.Equal(t, -1, a.Cmp(b))
	assert.True(t, a.Equal(rational.FromInt64(2)))
}

func TestFloor(t *testing.T) {
	r, err := rational.Parse("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), r.Floor())

	frac, err := rational.Parse("3.7")
	require.NoError(t, err)
	assert.Equal(t, int64(3), frac.Floor())

	negFrac := rational.FromInt64(0).Sub(frac) // -3.7
	assert.Equal(t, int64(-4), negFrac.Floor())
}

func TestPow(t *testing.T) {
	a := rational.FromInt64(2)
	exp := rational.FromInt64(10)
	assert.Equal(t, "1024", a.Pow(exp).String())

	negExp := rational.FromInt64(-1)
	assert.Equal(t, "1/2", a.Pow(negExp).String())
}
