package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecordsAndAnswers(t *testing.T) {
	s := New(map[string]string{"*IDN?": "Rigol Technologies,DG832"})
	s.Default = "0"

	require.NoError(t, s.Command("OUTPut%d %s", 1, "ON"))
	require.NoError(t, s.Command("*RST"))
	idn, err := s.Query("*IDN?")
	require.NoError(t, err)
	other, err := s.Query("COUNTER:MEASURE?")
	require.NoError(t, err)

	assert.Equal(t, "Rigol Technologies,DG832", idn)
	assert.Equal(t, "0", other)
	assert.Equal(t, []string{"OUTPut1 ON", "*RST", "*IDN?", "COUNTER:MEASURE?"}, s.Sent())
	assert.Equal(t, "COUNTER:MEASURE?", s.Last())

	s.Reset()
	assert.Empty(t, s.Sent())
	assert.Equal(t, "", s.Last())
}

func TestFailAfter(t *testing.T) {
	failure := errors.New("bus error")
	s := New(nil)
	s.FailAfter(1, failure)
	require.NoError(t, s.Command("*CLS"))
	assert.Same(t, failure, s.Command("*RST"))
	_, err := s.Query("*IDN?")
	assert.Same(t, failure, err)
	assert.Equal(t, []string{"*CLS"}, s.Sent())
}

func TestClose(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Close())
	assert.Equal(t, 1, s.CloseCount())
	assert.ErrorIs(t, s.Command("*RST"), ErrClosed)
}
