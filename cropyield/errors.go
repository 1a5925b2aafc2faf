package cropyield

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLabel matches every UnknownLabelError.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrDivisionByZero is returned when a sack size of zero is used.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrModelInference matches every ModelInferenceError.
	ErrModelInference = errors.New("model inference failed")
	// ErrAssetLoad matches every AssetLoadError.
	ErrAssetLoad = errors.New("asset load failed")
	// ErrInvalidInput marks form values outside their allowed range.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfig marks configuration that cannot be used.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidCatalog marks a vocabulary or recommendation table that cannot be used.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// UnknownLabelError reports a categorical value outside its fitted vocabulary.
type UnknownLabelError struct {
	Field string
	Label string
}

func (e *UnknownLabelError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unknown label %q", e.Label)
	}
	return fmt.Sprintf("unknown %s %q", e.Field, e.Label)
}

func (e *UnknownLabelError) Is(target error) bool {
	return target == ErrUnknownLabel
}

// ModelInferenceError wraps a failure raised while the model evaluates a feature vector.
type ModelInferenceError struct {
	ModelID string
	Err     error
}

func (e *ModelInferenceError) Error() string {
	if e.ModelID == "" {
		return fmt.Sprintf("model inference failed: %v", e.Err)
	}
	return fmt.Sprintf("model %s: inference failed: %v", e.ModelID, e.Err)
}

func (e *ModelInferenceError) Unwrap() error {
	return e.Err
}

func (e *ModelInferenceError) Is(target error) bool {
	return target == ErrModelInference
}

// AssetLoadError reports a startup file (model, background image) that could not be read.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

func (e *AssetLoadError) Is(target error) bool {
	return target == ErrAssetLoad
}

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
