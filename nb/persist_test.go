package nb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadModelRoundTrips(t *testing.T) {
	n := NewNB().Fit(
		[][]string{{"R1"}, {"R1", "R2"}, {"R3"}, {"R3", "R4"}},
		[]bool{true, true, false, false},
	)
	want := n.Apply([]string{"R1"})

	var buf bytes.Buffer
	require.NoError(t, SaveModel(&buf, n))

	loaded, err := LoadModel(&buf)
	require.NoError(t, err)
	assert.True(t, loaded.HasModel())
	assert.Equal(t, want, loaded.Apply([]string{"R1"}))
}

func TestLoadModelRejectsGarbage(t *testing.T) {
	_, err := LoadModel(bytes.NewReader([]byte("not a gob stream")))
	assert.Error(t, err)
}
