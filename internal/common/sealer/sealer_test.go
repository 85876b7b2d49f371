package sealer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	s := New("correct horse battery staple")

	sealed, err := s.Seal([]byte(`{"session_id":"abc"}`))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "abc")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"session_id":"abc"}`, string(opened))
}

func TestOpenWithWrongKey(t *testing.T) {
	sealed, err := New("one").Seal([]byte("payload"))
	require.NoError(t, err)

	_, err = New("two").Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed)

	_, err = New("two").Open([]byte("short"))
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestEmptyPassphraseIsPassThrough(t *testing.T) {
	s := New("")
	assert.IsType(t, Noop{}, s)

	sealed, err := s.Seal([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", string(sealed))
}
