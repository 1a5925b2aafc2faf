package cropyield

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LinearModel is a fitted linear regression: intercept plus one coefficient
// per feature, in FeatureVector order. JSON files decode as YAML.
type LinearModel struct {
	Intercept    float64   `yaml:"intercept" json:"intercept"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
}

// LinearPredictor evaluates a LinearModel without any native runtime.
type LinearPredictor struct {
	id    string
	model LinearModel
}

// NewLinearPredictor validates the coefficient count.
func NewLinearPredictor(id string, model LinearModel) (*LinearPredictor, error) {
	if len(model.Coefficients) != FeatureCount {
		return nil, fmt.Errorf("linear model: want %d coefficients, got %d", FeatureCount, len(model.Coefficients))
	}
	coef := make([]float64, FeatureCount)
	copy(coef, model.Coefficients)
	return &LinearPredictor{id: id, model: LinearModel{Intercept: model.Intercept, Coefficients: coef}}, nil
}

// LoadLinearPredictor reads a coefficients file.
func LoadLinearPredictor(cfg ModelConfig) (*LinearPredictor, error) {
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, &AssetLoadError{Path: cfg.Path, Err: err}
	}
	var model LinearModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, &AssetLoadError{Path: cfg.Path, Err: fmt.Errorf("decode linear model: %w", err)}
	}
	id := cfg.ModelID
	if id == "" {
		id = filepath.Base(cfg.Path)
	}
	p, err := NewLinearPredictor(id, model)
	if err != nil {
		return nil, &AssetLoadError{Path: cfg.Path, Err: err}
	}
	return p, nil
}

// ModelID returns the identifier used in logs and results.
func (p *LinearPredictor) ModelID() string {
	return p.id
}

// Predict returns intercept + Σ coefficient·feature.
func (p *LinearPredictor) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.model.Coefficients == nil {
		return 0, &ModelInferenceError{ModelID: p.id, Err: errClosed}
	}
	sum := p.model.Intercept
	for i, v := range features.Values() {
		sum += p.model.Coefficients[i] * v
	}
	return checkOutput(p.id, sum)
}

// Close drops the coefficients; later calls to Predict fail.
func (p *LinearPredictor) Close() error {
	if p == nil {
		return nil
	}
	p.model.Coefficients = nil
	return nil
}
