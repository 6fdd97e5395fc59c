package charstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gossip/charstream"
	"gossip/langerr"
)

func TestNextAdvancesAndTracksPosition(t *testing.T) {
	s := charstream.New("ab\ncd")

	r, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	r, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, 'b', r)

	r, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, '\n', r)

	line, col := s.Position()
	assert.Equal(t, 2, line)
	assert.Equal(t, 0, col)
}

func TestUngetRewindsOneCharacter(t *testing.T) {
	s := charstream.New("xy")

	r1, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 'x', r1)

	s.Unget()

	r2, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 'x', r2)
}

func TestUngetThenNextDoesNotPanicAtStreamStart(t *testing.T) {
	s := charstream.New("a")

	_, err := s.Next()
	require.NoError(t, err)

	s.Unget()

	r, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	_, err = s.Next()
	assert.ErrorAs(t, err, &langerr.EndOfStream{})
}

func TestNextAtEndReturnsEndOfStream(t *testing.T) {
	s := charstream.New("")
	_, err := s.Next()
	assert.ErrorAs(t, err, &langerr.EndOfStream{})
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := charstream.New("z")
	r, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 'z', r)

	r2, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 'z', r2)
}
