package cropyield

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// OrtPredictor runs an ONNX regression model (for example a scikit-learn
// regressor exported with skl2onnx) through onnxruntime.
type OrtPredictor struct {
	mu      sync.RWMutex
	session *ort.DynamicAdvancedSession
	cfg     ModelConfig
	ownsEnv bool
}

// NewOrtPredictor initializes the onnxruntime environment if needed and opens a session.
func NewOrtPredictor(cfg ModelConfig) (*OrtPredictor, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, &AssetLoadError{Path: cfg.Path, Err: err}
	}
	if cfg.InputName == "" || cfg.OutputName == "" {
		return nil, fmt.Errorf("%w: onnx input and output names are required", ErrInvalidConfig)
	}
	ownsEnv := false
	if !ort.IsInitialized() {
		if cfg.OrtLibrary != "" {
			ort.SetSharedLibraryPath(cfg.OrtLibrary)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
		ownsEnv = true
	}
	session, err := ort.NewDynamicAdvancedSession(cfg.Path,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		if ownsEnv {
			_ = ort.DestroyEnvironment()
		}
		return nil, &AssetLoadError{Path: cfg.Path, Err: fmt.Errorf("open onnx session: %w", err)}
	}
	return &OrtPredictor{session: session, cfg: cfg, ownsEnv: ownsEnv}, nil
}

// ModelID returns the identifier used in logs and results.
func (o *OrtPredictor) ModelID() string {
	return o.cfg.ModelID
}

// Predict evaluates one 1x4 float32 row and returns the first output element.
func (o *OrtPredictor) Predict(ctx context.Context, features FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.session == nil {
		return 0, o.inferenceErr(errClosed)
	}
	input, err := ort.NewTensor(ort.NewShape(1, FeatureCount), features.Float32s())
	if err != nil {
		return 0, o.inferenceErr(fmt.Errorf("create input tensor: %w", err))
	}
	defer input.Destroy()

	// A nil output is allocated by onnxruntime, so [1], [1,1] and
	// float64 outputs all work without knowing the exported shape.
	outputs := []ort.Value{nil}
	if err := o.session.Run([]ort.Value{input}, outputs); err != nil {
		return 0, o.inferenceErr(fmt.Errorf("run session: %w", err))
	}
	if outputs[0] == nil {
		return 0, o.inferenceErr(errors.New("no output produced"))
	}
	defer outputs[0].Destroy()

	var value float64
	switch out := outputs[0].(type) {
	case *ort.Tensor[float32]:
		data := out.GetData()
		if len(data) == 0 {
			return 0, o.inferenceErr(errors.New("empty output tensor"))
		}
		value = float64(data[0])
	case *ort.Tensor[float64]:
		data := out.GetData()
		if len(data) == 0 {
			return 0, o.inferenceErr(errors.New("empty output tensor"))
		}
		value = data[0]
	default:
		return 0, o.inferenceErr(fmt.Errorf("unsupported output type %T", outputs[0]))
	}
	return checkOutput(o.ModelID(), value)
}

// Close releases the session and, if this predictor created it, the ORT environment.
func (o *OrtPredictor) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	var errs []error
	if o.session != nil {
		errs = append(errs, o.session.Destroy())
		o.session = nil
	}
	if o.ownsEnv {
		errs = append(errs, ort.DestroyEnvironment())
		o.ownsEnv = false
	}
	return errors.Join(errs...)
}

func (o *OrtPredictor) inferenceErr(err error) error {
	return &ModelInferenceError{ModelID: o.cfg.ModelID, Err: err}
}
