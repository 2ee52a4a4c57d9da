package nb

import (
	"bytes"
	"encoding/gob"
	"math"
)

// LogSumExp computes log(sum(exp(x))) in a numerically stable way.
// Ported from count_vectorizer.py's sibling nb_estimator.py
// `log_sum_exp`.
func LogSumExp(xs []float64) float64 {
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	sum := 0.0
	for _, x := range xs {
		sum += math.Exp(x - max)
	}
	return max + math.Log(sum)
}

// MultinomialNaiveBayes is a Laplace-smoothed multinomial naive-Bayes
// classifier over two classes (-1 / 1), fit over sparse
// {vocabularyIndex: count} feature vectors from Vectorizer. Ported from
// original_source/ctparse/nb_estimator.py's `MultinomialNaiveBayes`.
type MultinomialNaiveBayes struct {
	Alpha         float64
	ClassPrior    [2]float64 // [negLogPrior, posLogPrior]
	LogLikelihood [2][]float64
	fitted        bool
}

// NewMultinomialNaiveBayes creates an estimator with the given
// Laplace-smoothing alpha (1.0 in the original).
func NewMultinomialNaiveBayes(alpha float64) *MultinomialNaiveBayes {
	return &MultinomialNaiveBayes{Alpha: alpha}
}

// Fitted reports whether Fit has been called.
func (m *MultinomialNaiveBayes) Fitted() bool { return m.fitted }

// estimatorGob mirrors MultinomialNaiveBayes with an exported Fitted
// field, since gob silently drops unexported fields -- GobEncode and
// GobDecode round-trip through it so a saved model remembers whether
// it was fitted.
type estimatorGob struct {
	Alpha         float64
	ClassPrior    [2]float64
	LogLikelihood [2][]float64
	Fitted        bool
}

func (m *MultinomialNaiveBayes) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	g := estimatorGob{m.Alpha, m.ClassPrior, m.LogLikelihood, m.fitted}
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *MultinomialNaiveBayes) GobDecode(data []byte) error {
	var g estimatorGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	m.Alpha, m.ClassPrior, m.LogLikelihood, m.fitted = g.Alpha, g.ClassPrior, g.LogLikelihood, g.Fitted
	return nil
}

func (m *MultinomialNaiveBayes) constructLogClassPrior(y []int) {
	neg, pos := 0, 0
	for _, yi := range y {
		if yi == -1 {
			neg++
		} else {
			pos++
		}
	}
	total := float64(neg + pos)
	m.ClassPrior[0] = math.Log(float64(neg) / total)
	m.ClassPrior[1] = math.Log(float64(pos) / total)
}

func (m *MultinomialNaiveBayes) constructLogLikelihood(X []map[int]int, y []int) {
	vocabLen := 0
	for idx := range X[0] {
		if idx+1 > vocabLen {
			vocabLen = idx + 1
		}
	}
	for _, x := range X {
		for idx := range x {
			if idx+1 > vocabLen {
				vocabLen = idx + 1
			}
		}
	}

	neg := make([]float64, vocabLen)
	pos := make([]float64, vocabLen)
	for i := range neg {
		neg[i] = m.Alpha
		pos[i] = m.Alpha
	}
	for i, x := range X {
		target := neg
		if y[i] == 1 {
			target = pos
		}
		for idx, cnt := range x {
			target[idx] += float64(cnt)
		}
	}

	var negSum, posSum float64
	for _, v := range neg {
		negSum += v
	}
	for _, v := range pos {
		posSum += v
	}

	logNeg := make([]float64, vocabLen)
	logPos := make([]float64, vocabLen)
	for i := 0; i < vocabLen; i++ {
		logPos[i] = math.Log(pos[i]) - math.Log(posSum)
		logNeg[i] = math.Log(neg[i]) - math.Log(negSum)
	}
	m.LogLikelihood[0] = logNeg
	m.LogLikelihood[1] = logPos
}

// Fit trains the estimator on sparse feature vectors X with labels y
// (each -1 or 1).
func (m *MultinomialNaiveBayes) Fit(X []map[int]int, y []int) *MultinomialNaiveBayes {
	m.constructLogClassPrior(y)
	m.constructLogLikelihood(X, y)
	m.fitted = true
	return m
}

// PredictLogProbability returns, for each sample, the normalized
// (negClassLogProb, posClassLogProb) posterior.
func (m *MultinomialNaiveBayes) PredictLogProbability(X []map[int]int) [][2]float64 {
	out := make([][2]float64, len(X))
	for i, x := range X {
		neg := m.ClassPrior[0]
		pos := m.ClassPrior[1]
		for idx, cnt := range x {
			if idx < len(m.LogLikelihood[1]) {
				pos += m.LogLikelihood[1][idx] * float64(cnt)
			}
			if idx < len(m.LogLikelihood[0]) {
				neg += m.LogLikelihood[0][idx] * float64(cnt)
			}
		}
		norm := LogSumExp([]float64{neg, pos})
		out[i] = [2]float64{neg - norm, pos - norm}
	}
	return out
}
