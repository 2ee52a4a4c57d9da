package corpus

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCorpusText = `# comment lines and blanks are ignored

Time[]{2018-03-12 X:X (X/X)}	2018-03-07T12:43:00Z	Montag
Time[]{2018-03-12 X:X (X/X)}	2018-03-07T12:43:00Z	Mo.
Time[]{2018-03-13 X:X (X/X)}	2018-03-07T12:43:00Z	tuesday
`

func TestDecodeGroupsMatchingLines(t *testing.T) {
	examples, err := Decode(strings.NewReader(sampleCorpusText))
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, "Time[]{2018-03-12 X:X (X/X)}", examples[0].Target)
	assert.Equal(t, []string{"Montag", "Mo."}, examples[0].Tests)
	assert.True(t, examples[0].RefTime.Equal(time.Date(2018, 3, 7, 12, 43, 0, 0, time.UTC)))

	assert.Equal(t, "Time[]{2018-03-13 X:X (X/X)}", examples[1].Target)
	assert.Equal(t, []string{"tuesday"}, examples[1].Tests)
}

func TestDecodeRejectsMalformedLine(t *testing.T) {
	_, err := Decode(strings.NewReader("not enough columns\n"))
	assert.Error(t, err)
}

func TestLoadFilePlainText(t *testing.T) {
	p := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(p, []byte(sampleCorpusText), 0644))

	examples, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, examples, 2)
}

func TestLoadFileGzipCompressed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "corpus.txt.gz")
	fout, err := os.Create(p)
	require.NoError(t, err)
	gw := gzip.NewWriter(fout)
	_, err = gw.Write([]byte(sampleCorpusText))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fout.Close())

	examples, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, []string{"Montag", "Mo."}, examples[0].Tests)
}
