package ml

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboxkit/email-classifier/internal/features"
)

func artifactTestModel(t *testing.T) *EnsembleModel {
	t.Helper()

	vocab := features.BuildVocabulary([][]string{
		{"free", "money", "claim"},
		{"free", "prize", "claim"},
		{"meeting", "agenda", "notes"},
		{"meeting", "review", "notes"},
		{"invoice", "payment", "due"},
		{"invoice", "overdue", "due"},
	}, features.VocabOptions{MinDocFreq: 1, NGramMax: 1})

	dims := vocab.Size() + features.DomainFeatureCount
	var X [][]float64
	var y []int
	for i := 0; i < 10; i++ {
		for class := 0; class < 3; class++ {
			row := make([]float64, dims)
			row[class] = 1 + float64(i)*0.01
			X = append(X, row)
			y = append(y, class)
		}
	}

	forest, boosted, linear := TrainSubModels(X, y, 3, smallTrainConfig())
	return &EnsembleModel{
		Version:            "test-version",
		TrainedAt:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		ValidationAccuracy: 0.95,
		Categories:         []string{"billing", "spam", "work"},
		Vocab:              vocab,
		Forest:             forest,
		Boosted:            boosted,
		Linear:             linear,
	}
}

func TestModelRoundTripPreservesPredictions(t *testing.T) {
	m := artifactTestModel(t)

	data, err := m.Encode()
	require.NoError(t, err)

	decoded, err := DecodeModel(data)
	require.NoError(t, err)

	assert.Equal(t, m.Version, decoded.Version)
	assert.Equal(t, m.TrainedAt, decoded.TrainedAt)
	assert.Equal(t, m.ValidationAccuracy, decoded.ValidationAccuracy)
	assert.Equal(t, m.Categories, decoded.Categories)

	dims := m.Vocab.Size() + features.DomainFeatureCount
	probe := make([]float64, dims)
	probe[0] = 0.9
	probe[1] = 0.4

	for i, sub := range m.SubModels() {
		assert.Equal(t, sub.PredictProba(probe), decoded.SubModels()[i].PredictProba(probe),
			"sub-model %s diverged after round trip", sub.Name())
	}
}

func TestDecodeModelRejectsIncompleteArtifact(t *testing.T) {
	_, err := DecodeModel([]byte(`{"version":"v1","categories":["spam"]}`))
	assert.Error(t, err)
}

func TestDecodeModelRejectsGarbage(t *testing.T) {
	_, err := DecodeModel([]byte("not json"))
	assert.Error(t, err)
}

func TestSaveAndLoadModel(t *testing.T) {
	m := artifactTestModel(t)
	path := filepath.Join(t.TempDir(), "nested", "model.json")

	require.NoError(t, SaveModel(path, m))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, m.Version, loaded.Version)
	assert.Equal(t, m.Vocab.Terms, loaded.Vocab.Terms)

	// No temp files left behind after the atomic rename
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveModelOverwritesAtomically(t *testing.T) {
	m := artifactTestModel(t)
	path := filepath.Join(t.TempDir(), "model.json")

	require.NoError(t, SaveModel(path, m))

	m2 := artifactTestModel(t)
	m2.Version = "second-version"
	require.NoError(t, SaveModel(path, m2))

	loaded, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, "second-version", loaded.Version)
}
