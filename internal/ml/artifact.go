package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Encode serializes the model as one JSON artifact: vocabulary, all
// sub-model parameters, and the category list. Go's float64 JSON encoding is
// exact, so a decoded model is behaviorally identical to the one encoded.
func (m *EnsembleModel) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// DecodeModel reconstructs a model from its artifact bytes.
func DecodeModel(data []byte) (*EnsembleModel, error) {
	var m EnsembleModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if m.Vocab == nil || m.Forest == nil || m.Boosted == nil || m.Linear == nil {
		return nil, fmt.Errorf("model artifact %q is incomplete", m.Version)
	}
	return &m, nil
}

// SaveModel writes the artifact build-new-then-rename: the bytes land in a
// temp file in the target directory and are moved into place atomically, so
// a reader never observes a partially written artifact.
func SaveModel(path string, m *EnsembleModel) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish artifact: %w", err)
	}
	return nil
}

// LoadModel reads an artifact from disk.
func LoadModel(path string) (*EnsembleModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	return DecodeModel(data)
}
