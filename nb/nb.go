package nb

import (
	"bytes"
	"encoding/gob"
)

// NB bundles a Vectorizer and a MultinomialNaiveBayes estimator behind
// the convenience API package search and package corpus use: fit on
// rule-name-sequence documents, score a sequence as a log-odds value,
// and expand one production's rule history into its prefix training
// samples. Ported from original_source/ctparse/nb.py.
type NB struct {
	vectorizer *Vectorizer
	estimator  *MultinomialNaiveBayes
}

// NewNB creates an untrained model; HasModel is false until Fit runs.
func NewNB() *NB {
	return &NB{}
}

// HasModel reports whether Fit has been called. Apply/Predict return a
// neutral 0.0 score for every input until then, matching nb.py's
// "if no model is fitted, return 0.0 for all samples".
func (n *NB) HasModel() bool { return n.estimator != nil && n.estimator.Fitted() }

// nbGob mirrors NB with exported fields so SaveModel/LoadModel can
// round-trip the unexported vectorizer/estimator through encoding/gob.
type nbGob struct {
	Vectorizer *Vectorizer
	Estimator  *MultinomialNaiveBayes
}

func (n *NB) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	g := nbGob{n.vectorizer, n.estimator}
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *NB) GobDecode(data []byte) error {
	var g nbGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	n.vectorizer, n.estimator = g.Vectorizer, g.Estimator
	return nil
}

// Fit trains the vectorizer + estimator on a corpus of rule-name
// sequences X, each labeled y[i] = true iff that sequence's production
// was the correct parse.
func (n *NB) Fit(X [][]string, y []bool) *NB {
	n.vectorizer = NewVectorizer(1, 3)
	features := n.vectorizer.FitTransform(X)
	labels := make([]int, len(y))
	for i, b := range y {
		if b {
			labels[i] = 1
		} else {
			labels[i] = -1
		}
	}
	n.estimator = NewMultinomialNaiveBayes(1.0).Fit(features, labels)
	return n
}

// Predict scores each rule-name sequence in X as a log-odds value
// (positive-class log prob minus negative-class log prob).
func (n *NB) Predict(X [][]string) []float64 {
	if !n.HasModel() {
		out := make([]float64, len(X))
		return out
	}
	feats := n.vectorizer.Transform(X)
	probs := n.estimator.PredictLogProbability(feats)
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = p[1] - p[0]
	}
	return out
}

// Apply scores a single rule-name sequence.
func (n *NB) Apply(x []string) float64 {
	return n.Predict([][]string{x})[0]
}

// MapProd expands one production's full rule history into every
// non-empty proper prefix, each labeled correct -- the training
// samples package corpus accumulates while replaying labeled examples.
// A history of fewer than two rules has no such prefix and yields a
// single empty sample labeled false instead.
// Ported from nb.py's `map_prod`.
func MapProd(prod []string, correct bool) ([][]string, []bool) {
	if len(prod) < 2 {
		return [][]string{{}}, []bool{false}
	}
	var xs [][]string
	var ys []bool
	for i := 1; i < len(prod); i++ {
		prefix := make([]string, i)
		copy(prefix, prod[:i])
		xs = append(xs, prefix)
		ys = append(ys, correct)
	}
	return xs, ys
}
