package cropyield

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Predictor exposes the minimal surface required by the service layer:
// the opaque model maps a feature vector to a yield per hectare.
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
	ModelID() string
	Close() error
}

// OpenPredictor loads the artifact described by cfg. Load failures are AssetLoadErrors.
func OpenPredictor(cfg ModelConfig) (Predictor, error) {
	switch cfg.Kind {
	case ModelONNX:
		return NewOrtPredictor(cfg)
	case ModelLinear:
		return LoadLinearPredictor(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown model kind %q", ErrInvalidConfig, cfg.Kind)
	}
}

// PredictorFunc adapts a plain function to the Predictor interface.
type PredictorFunc func(ctx context.Context, features FeatureVector) (float64, error)

// Predict calls fn.
func (fn PredictorFunc) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	return fn(ctx, features)
}

// ModelID identifies the adapter in logs.
func (fn PredictorFunc) ModelID() string { return "func" }

// Close is a no-op.
func (fn PredictorFunc) Close() error { return nil }

func checkOutput(modelID string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ModelInferenceError{ModelID: modelID, Err: fmt.Errorf("non-finite output %v", v)}
	}
	return v, nil
}

var errClosed = errors.New("predictor is closed")
