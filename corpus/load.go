package corpus

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/comtravo/ctparse/utils"
)

// LoadFile reads a corpus file from disk and decodes it with Decode.
// The file may be plain text, gzip, or bzip2 compressed -- compression is
// sniffed from content, not the extension, via utils.OpenFileReader, so a
// large corpus can be checked in compressed and still loaded directly.
func LoadFile(path string) ([]Example, error) {
	rdr, err := utils.OpenFileReader(path)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return Decode(rdr)
}

// Decode reads the line-oriented corpus format used by this package's
// fixtures: one line per surface-form test, tab-separated
//
//	target<TAB>refTime(RFC3339)<TAB>text
//
// Consecutive lines sharing the same target and reference time are
// folded into a single Example with multiple Tests entries, mirroring
// how original_source/ctparse/time/corpus.py groups several acceptable
// phrasings under one (target, ref_time) pair.
func Decode(r interface{ Read([]byte) (int, error) }) ([]Example, error) {
	var examples []Example
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == `` || strings.HasPrefix(line, `#`) {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("corpus: malformed line %q: expected target<TAB>refTime<TAB>text", line)
		}
		target, refStr, text := fields[0], fields[1], fields[2]
		refTime, err := time.Parse(time.RFC3339, refStr)
		if err != nil {
			return nil, fmt.Errorf("corpus: bad reference time %q: %w", refStr, err)
		}
		if n := len(examples); n > 0 && examples[n-1].Target == target && examples[n-1].RefTime.Equal(refTime) {
			examples[n-1].Tests = append(examples[n-1].Tests, text)
			continue
		}
		examples = append(examples, Example{Target: target, RefTime: refTime, Tests: []string{text}})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}
