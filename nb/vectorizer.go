// Package nb ports the hand-rolled n-gram count vectorizer and
// multinomial naive-Bayes estimator the scorer package trains and
// scores rule-name sequences with. spec.md explicitly rules out
// pulling in a general ML framework ("no learning algorithm beyond the
// documented estimator") -- scikit-learn, which
// original_source/ctparse/nb.py and nb_scorer.py wrap, is exactly such
// a framework, so this package reimplements the two specific
// algorithms instead of depending on one.
//
// Grounded on original_source/ctparse/count_vectorizer.py.
package nb

import "strings"

// Vectorizer builds a vocabulary over tokenized documents, including
// every n-gram in [MinN, MaxN], and maps new documents to sparse
// {vocabularyIndex: count} feature vectors.
type Vectorizer struct {
	MinN, MaxN int
	Vocabulary map[string]int
}

// NewVectorizer creates a vectorizer considering n-grams of length
// minN..maxN inclusive.
func NewVectorizer(minN, maxN int) *Vectorizer {
	return &Vectorizer{MinN: minN, MaxN: maxN}
}

// ngrams replaces a tokenized document with every n-gram (space-joined
// token runs) of length in [MinN, MaxN]. Ported from
// CountVectorizer._create_ngrams.
func (v *Vectorizer) ngrams(doc []string) []string {
	n := len(doc)
	maxN := v.MaxN
	if n < maxN {
		maxN = n
	}
	var out []string
	minNN := v.MinN
	if v.MinN == 1 {
		out = append(out, doc...)
		minNN = v.MinN + 1
	}
	for gram := minNN; gram <= maxN; gram++ {
		for i := 0; i+gram <= n; i++ {
			out = append(out, strings.Join(doc[i:i+gram], " "))
		}
	}
	return out
}

// featureMatrix maps a batch of tokenized documents to sparse feature
// vectors, optionally (re)setting the vocabulary from what it sees.
// Ported from CountVectorizer._create_feature_matrix.
func (v *Vectorizer) featureMatrix(docs [][]string, setVocabulary bool) []map[int]int {
	expanded := make([][]string, len(docs))
	for i, d := range docs {
		expanded[i] = v.ngrams(d)
	}

	countMatrix := make([]map[string]int, len(expanded))
	seen := map[string]bool{}
	var order []string
	for i, doc := range expanded {
		counts := map[string]int{}
		for _, feat := range doc {
			counts[feat]++
			if !seen[feat] {
				seen[feat] = true
				order = append(order, feat)
			}
		}
		countMatrix[i] = counts
	}

	if setVocabulary || v.Vocabulary == nil {
		v.Vocabulary = make(map[string]int, len(order))
		for idx, word := range order {
			v.Vocabulary[word] = idx
		}
	}

	out := make([]map[int]int, len(countMatrix))
	for i, counts := range countMatrix {
		vec := map[int]int{}
		for word, cnt := range counts {
			if idx, ok := v.Vocabulary[word]; ok {
				vec[idx] = cnt
			}
		}
		out[i] = vec
	}
	return out
}

// Fit learns the vocabulary from documents.
func (v *Vectorizer) Fit(docs [][]string) { v.FitTransform(docs) }

// FitTransform learns the vocabulary from documents and returns their
// feature vectors.
func (v *Vectorizer) FitTransform(docs [][]string) []map[int]int {
	return v.featureMatrix(docs, true)
}

// Transform maps documents to feature vectors using the existing
// vocabulary, without altering it.
func (v *Vectorizer) Transform(docs [][]string) []map[int]int {
	return v.featureMatrix(docs, false)
}
