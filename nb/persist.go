package nb

import (
	"encoding/gob"
	"io"
)

// SaveModel gob-encodes a fitted model, the on-disk format
// cmd/ctparse's -train flag writes and its config file's Scorer-Model
// setting reads back.
// original_source/ctparse/nb_scorer.py pickles the equivalent
// scikit-learn estimator; gob is this module's idiomatic counterpart.
func SaveModel(w io.Writer, n *NB) error {
	return gob.NewEncoder(w).Encode(n)
}

// LoadModel decodes a model previously written by SaveModel.
func LoadModel(r io.Reader) (*NB, error) {
	n := &NB{}
	if err := gob.NewDecoder(r).Decode(n); err != nil {
		return nil, err
	}
	return n, nil
}
