package features

import (
	"github.com/inboxkit/email-classifier/internal/textproc"
)

// Vector is the combined feature representation of one email: the sparse
// lexical signature plus the fixed-length domain slice. Immutable once built.
type Vector struct {
	Lexical map[int]float64
	Domain  [DomainFeatureCount]float64
}

// Extract produces the feature vector for a normalized email against a
// published vocabulary. It is a pure function: identical input and identical
// vocabulary always yield a bit-identical vector. An email with no
// in-vocabulary terms (including the empty email) yields an all-zero lexical
// part, which the ensemble still classifies at low confidence.
func Extract(n *textproc.NormalizedEmail, vocab *Vocabulary) *Vector {
	return &Vector{
		Lexical: vocab.Lexical(n.Tokens),
		Domain:  DomainFeatures(n),
	}
}

// Dense lays the vector out as one contiguous slice: vocabulary slots first,
// then the domain slots. All sub-models train and predict on this layout.
func (v *Vector) Dense(vocabSize int) []float64 {
	dense := make([]float64, vocabSize+DomainFeatureCount)
	for idx, w := range v.Lexical {
		if idx < vocabSize {
			dense[idx] = w
		}
	}
	copy(dense[vocabSize:], v.Domain[:])
	return dense
}
