package cropyield

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearPredictor(t *testing.T) {
	p, err := NewLinearPredictor("lin", LinearModel{Intercept: 100, Coefficients: []float64{1, 10, 5, -2}})
	require.NoError(t, err)

	got, err := p.Predict(context.Background(), FeatureVector{Year: 2000, AreaHectares: 3, SoilCode: 2, CropCode: 4})
	require.NoError(t, err)
	assert.InDelta(t, 100+2000+30+10-8, got, 1e-9)

	require.NoError(t, p.Close())
	_, err = p.Predict(context.Background(), FeatureVector{})
	assert.ErrorIs(t, err, ErrModelInference)
}

func TestLinearPredictorRejectsNonFinite(t *testing.T) {
	p, err := NewLinearPredictor("lin", LinearModel{Intercept: math.Inf(1), Coefficients: []float64{0, 0, 0, 0}})
	require.NoError(t, err)
	_, err = p.Predict(context.Background(), FeatureVector{})
	assert.ErrorIs(t, err, ErrModelInference)
}

func TestNewLinearPredictorCoefficientCount(t *testing.T) {
	_, err := NewLinearPredictor("lin", LinearModel{Coefficients: []float64{1, 2}})
	assert.Error(t, err)
}

func TestLoadLinearPredictor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yield.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"intercept": 12.5, "coefficients": [0, 100, 0, 0]}`), 0o644))

	p, err := OpenPredictor(ModelConfig{Kind: ModelLinear, Path: path})
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, "yield.json", p.ModelID())

	got, err := p.Predict(context.Background(), FeatureVector{AreaHectares: 2})
	require.NoError(t, err)
	assert.InDelta(t, 212.5, got, 1e-9)
}

func TestLoadLinearPredictorErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadLinearPredictor(ModelConfig{Path: filepath.Join(dir, "missing.yaml")})
	assert.ErrorIs(t, err, ErrAssetLoad)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("coefficients: [1, 2]\n"), 0o644))
	_, err = LoadLinearPredictor(ModelConfig{Path: bad})
	assert.ErrorIs(t, err, ErrAssetLoad)

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("intercept: [oops"), 0o644))
	_, err = LoadLinearPredictor(ModelConfig{Path: garbage})
	assert.ErrorIs(t, err, ErrAssetLoad)
}

func TestOpenPredictorUnknownKind(t *testing.T) {
	_, err := OpenPredictor(ModelConfig{Kind: "pickle", Path: "model.pkl"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOrtPredictorMissingModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crop_yield_model.onnx")
	_, err := OpenPredictor(ModelConfig{Kind: ModelONNX, Path: path, InputName: "float_input", OutputName: "variable"})
	require.ErrorIs(t, err, ErrAssetLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
