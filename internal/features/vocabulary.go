// Package features builds the fixed-width numeric representation of an email
// from two coordinated sources: a sparse tf-idf lexical signature over a
// vocabulary learned at training time, and a fixed-length set of deterministic
// domain signals.
package features

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// VocabOptions controls vocabulary construction.
type VocabOptions struct {
	// MaxFeatures caps the vocabulary at the top terms by document frequency.
	MaxFeatures int
	// MinDocFreq drops terms seen in fewer documents, suppressing noise.
	MinDocFreq int
	// MaxDocRatio drops terms seen in more than this fraction of documents.
	MaxDocRatio float64
	// NGramMax is the longest n-gram emitted (1..3).
	NGramMax int
}

// DefaultVocabOptions mirrors the tuned extraction parameters of the training
// pipeline.
func DefaultVocabOptions() VocabOptions {
	return VocabOptions{
		MaxFeatures: 5000,
		MinDocFreq:  2,
		MaxDocRatio: 0.8,
		NGramMax:    2,
	}
}

// Vocabulary is the lexical-signature term table. It is part of the published
// model artifact and must travel with the sub-models that were trained on it.
type Vocabulary struct {
	Terms    []string  `json:"terms"`
	IDF      []float64 `json:"idf"`
	NGramMax int       `json:"ngram_max"`

	index map[string]int
}

// vocabularyJSON is the wire form; the term index is rebuilt on decode.
type vocabularyJSON struct {
	Terms    []string  `json:"terms"`
	IDF      []float64 `json:"idf"`
	NGramMax int       `json:"ngram_max"`
}

// MarshalJSON encodes the persistent fields only.
func (v *Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(vocabularyJSON{Terms: v.Terms, IDF: v.IDF, NGramMax: v.NGramMax})
}

// UnmarshalJSON decodes and rebuilds the derived term index.
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	var w vocabularyJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v.Terms = w.Terms
	v.IDF = w.IDF
	v.NGramMax = w.NGramMax
	v.buildIndex()
	return nil
}

func (v *Vocabulary) buildIndex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, t := range v.Terms {
		v.index[t] = i
	}
}

// Size returns the number of vocabulary terms.
func (v *Vocabulary) Size() int { return len(v.Terms) }

// BuildVocabulary learns a vocabulary from tokenized training documents.
// Construction is deterministic: term selection ranks by document frequency
// with a lexicographic tie-break, and the final index order is sorted.
func BuildVocabulary(docs [][]string, opts VocabOptions) *Vocabulary {
	if opts.NGramMax < 1 {
		opts.NGramMax = 1
	}
	docFreq := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{})
		for _, term := range NGrams(tokens, opts.NGramMax) {
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	maxDF := len(docs)
	if opts.MaxDocRatio > 0 {
		maxDF = int(opts.MaxDocRatio * float64(len(docs)))
	}

	type termFreq struct {
		term string
		df   int
	}
	candidates := make([]termFreq, 0, len(docFreq))
	for term, df := range docFreq {
		if df < opts.MinDocFreq || df > maxDF {
			continue
		}
		candidates = append(candidates, termFreq{term, df})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].df != candidates[j].df {
			return candidates[i].df > candidates[j].df
		}
		return candidates[i].term < candidates[j].term
	})
	if opts.MaxFeatures > 0 && len(candidates) > opts.MaxFeatures {
		candidates = candidates[:opts.MaxFeatures]
	}

	terms := make([]string, len(candidates))
	for i, c := range candidates {
		terms[i] = c.term
	}
	sort.Strings(terms)

	v := &Vocabulary{Terms: terms, NGramMax: opts.NGramMax}
	v.buildIndex()
	v.IDF = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		df := float64(docFreq[term])
		// Smoothed idf; the +1 keeps in-every-document terms from zeroing out.
		v.IDF[i] = math.Log((1+n)/(1+df)) + 1
	}
	return v
}

// Lexical computes the sparse tf-idf signature of a token stream. Terms
// outside the vocabulary contribute nothing. Sublinear tf scaling and L2
// normalization keep long emails comparable with short ones.
func (v *Vocabulary) Lexical(tokens []string) map[int]float64 {
	counts := make(map[int]int)
	for _, term := range NGrams(tokens, v.NGramMax) {
		if idx, ok := v.index[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return map[int]float64{}
	}

	weights := make(map[int]float64, len(counts))
	var sumSq float64
	for idx, c := range counts {
		w := (1 + math.Log(float64(c))) * v.IDF[idx]
		weights[idx] = w
		sumSq += w * w
	}
	norm := math.Sqrt(sumSq)
	for idx := range weights {
		weights[idx] /= norm
	}
	return weights
}

// NGrams expands a token stream into all 1..max grams, joined with spaces.
func NGrams(tokens []string, max int) []string {
	if max < 1 {
		max = 1
	}
	grams := make([]string, 0, len(tokens)*max)
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if n == 1 {
				grams = append(grams, tokens[i])
				continue
			}
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
