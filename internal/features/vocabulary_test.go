package features

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vocabDocs() [][]string {
	return [][]string{
		{"free", "money", "click", "now"},
		{"free", "money", "claim", "prize"},
		{"meeting", "tomorrow", "agenda", "attached"},
		{"meeting", "notes", "review", "attached"},
		{"invoice", "payment", "overdue", "notice"},
		{"invoice", "payment", "due", "friday"},
	}
}

func TestBuildVocabularyFiltersByDocFreq(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MinDocFreq: 2, NGramMax: 1})

	// Terms in >= 2 documents survive
	assert.Contains(t, v.Terms, "free")
	assert.Contains(t, v.Terms, "meeting")
	assert.Contains(t, v.Terms, "invoice")

	// Singletons are dropped
	assert.NotContains(t, v.Terms, "prize")
	assert.NotContains(t, v.Terms, "agenda")
}

func TestBuildVocabularyMaxDocRatio(t *testing.T) {
	docs := [][]string{
		{"the", "free", "money"},
		{"the", "meeting", "notes"},
		{"the", "invoice", "payment"},
		{"the", "free", "meeting"},
	}
	v := BuildVocabulary(docs, VocabOptions{MinDocFreq: 1, MaxDocRatio: 0.8, NGramMax: 1})
	assert.NotContains(t, v.Terms, "the")
	assert.Contains(t, v.Terms, "free")
}

func TestBuildVocabularyCapsFeatures(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MaxFeatures: 3, MinDocFreq: 2, NGramMax: 1})
	assert.Len(t, v.Terms, 3)
}

func TestBuildVocabularyDeterministic(t *testing.T) {
	opts := VocabOptions{MaxFeatures: 10, MinDocFreq: 1, NGramMax: 2}
	first := BuildVocabulary(vocabDocs(), opts)
	second := BuildVocabulary(vocabDocs(), opts)
	assert.Equal(t, first.Terms, second.Terms)
	assert.Equal(t, first.IDF, second.IDF)
}

func TestBuildVocabularyTermsSorted(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MinDocFreq: 1, NGramMax: 1})
	for i := 1; i < len(v.Terms); i++ {
		assert.Less(t, v.Terms[i-1], v.Terms[i])
	}
}

func TestNGrams(t *testing.T) {
	grams := NGrams([]string{"free", "money", "now"}, 2)
	assert.Equal(t, []string{"free", "money", "now", "free money", "money now"}, grams)
}

func TestLexicalL2Normalized(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MinDocFreq: 1, NGramMax: 1})
	weights := v.Lexical([]string{"free", "money", "click", "now", "free"})
	require.NotEmpty(t, weights)

	var sumSq float64
	for _, w := range weights {
		sumSq += w * w
	}
	assert.InDelta(t, 1.0, sumSq, 1e-9)
}

func TestLexicalOutOfVocabulary(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MinDocFreq: 1, NGramMax: 1})
	weights := v.Lexical([]string{"zebra", "quantum", "xylophone"})
	assert.Empty(t, weights)
}

func TestLexicalSublinearTF(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MinDocFreq: 1, NGramMax: 1})
	idx, ok := v.index["free"]
	require.True(t, ok)

	// Pre-normalization weight for count c is (1+ln c) * idf; repeating a term
	// should grow its weight sublinearly. Compare against a second term to see
	// the relative effect after normalization.
	once := v.Lexical([]string{"free", "meeting"})
	thrice := v.Lexical([]string{"free", "free", "free", "meeting"})
	assert.Greater(t, thrice[idx], once[idx])

	mIdx := v.index["meeting"]
	ratioOnce := once[idx] / once[mIdx]
	ratioThrice := thrice[idx] / thrice[mIdx]
	expected := ratioOnce * (1 + math.Log(3))
	assert.InDelta(t, expected, ratioThrice, 1e-9)
}

func TestVocabularyJSONRoundTrip(t *testing.T) {
	v := BuildVocabulary(vocabDocs(), VocabOptions{MinDocFreq: 1, NGramMax: 2})

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded Vocabulary
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, v.Terms, decoded.Terms)
	assert.Equal(t, v.IDF, decoded.IDF)
	assert.Equal(t, v.NGramMax, decoded.NGramMax)

	// The rebuilt index must produce identical signatures
	tokens := []string{"free", "money", "meeting", "invoice"}
	assert.Equal(t, v.Lexical(tokens), decoded.Lexical(tokens))
}
