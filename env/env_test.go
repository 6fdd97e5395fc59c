package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/env"
)

func TestDeclareAndLookup(t *testing.T) {
	s := env.New()
	require.NoError(t, s.Declare("x", 10, "Number"))

	v, err := s.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestRedeclareInSameFrameFails(t *testing.T) {
	s := env.New()
	require.NoError(t, s.Declare("x", 1, "Number"))
	err := s.Declare("x", 2, "Number")
	assert.Error(t, err)
}

func TestLookupWalksDownToGlobalFrame(t *testing.T) {
	s := env.New()
	require.NoError(t, s.Declare("g", "global", "String"))
	s.Push()
	v, err := s.Lookup("g")
	require.NoError(t, err)
	assert.Equal(t, "global", v)
}

func TestAssignRejectsTypeMismatch(t *testing.T) {
	s := env.New()
	require.NoError(t, s.Declare("x", 1, "Number"))
	err := s.Assign("x", "oops", "String")
	assert.Error(t, err)
}

func TestPushPopRestoresScope(t *testing.T) {
	s := env.New()
	assert.Equal(t, 0, s.Depth())
	s.Push()
	assert.Equal(t, 1, s.Depth())
	require.NoError(t, s.Declare("inner", 1, "Number"))
	s.Pop()
	assert.Equal(t, 0, s.Depth())
	_, err := s.Lookup("inner")
	assert.Error(t, err)
}

func TestUndeclaredLookupFails(t *testing.T) {
	s := env.New()
	_, err := s.Lookup("nope")
	assert.Error(t, err)
}

func TestPopToUnwindsMultipleFrames(t *testing.T) {
	s := env.New()
	s.Push()
	s.Push()
	s.Push()
	assert.Equal(t, 3, s.Depth())
	s.PopTo(0)
	assert.Equal(t, 0, s.Depth())
}

func TestPopToIsNoOpWhenAlreadyAtOrBelowDepth(t *testing.T) {
	s := env.New()
	s.Push()
	s.PopTo(5)
	assert.Equal(t, 1, s.Depth())
}
