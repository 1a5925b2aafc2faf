package cropyield

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service turns form values into a yield estimate. The catalog and the
// predictor are loaded once at startup and only read afterwards.
type Service struct {
	predictor Predictor
	catalog   *Catalog
	logger    *zap.Logger
	newID     func() string
}

// NewService constructs a service with the given predictor and catalog.
func NewService(predictor Predictor, catalog *Catalog, logger *zap.Logger) (*Service, error) {
	if predictor == nil {
		return nil, errors.New("predictor is required")
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		predictor: predictor,
		catalog:   catalog,
		logger:    logger,
		newID:     uuid.NewString,
	}, nil
}

// Close releases the predictor.
func (s *Service) Close() error {
	return s.predictor.Close()
}

// Catalog returns the shared catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// ModelID identifies the loaded model.
func (s *Service) ModelID() string {
	return s.predictor.ModelID()
}

// Features normalizes the categorical fields and builds the model input.
func (s *Service) Features(in Input) (FeatureVector, error) {
	if err := checkNonNegative("irrigated area", in.AreaHectares); err != nil {
		return FeatureVector{}, err
	}
	soilCode, err := s.catalog.EncodeSoil(NormalizeLabel(in.SoilType))
	if err != nil {
		return FeatureVector{}, fmt.Errorf("encode soil type: %w", err)
	}
	cropCode, err := s.catalog.EncodeCrop(NormalizeLabel(in.CropType))
	if err != nil {
		return FeatureVector{}, fmt.Errorf("encode crop type: %w", err)
	}
	return FeatureVector{
		Year:         in.Year,
		AreaHectares: in.AreaHectares,
		SoilCode:     soilCode,
		CropCode:     cropCode,
	}, nil
}

// Predict runs one synchronous prediction. The model is invoked exactly once;
// its failures are returned as ModelInferenceError.
func (s *Service) Predict(ctx context.Context, in Input) (Result, error) {
	if err := checkNonNegative("MSP", in.MSP); err != nil {
		return Result{}, err
	}
	in.SoilType = NormalizeLabel(in.SoilType)
	in.CropType = NormalizeLabel(in.CropType)
	features, err := s.Features(in)
	if err != nil {
		s.logger.Warn("prediction rejected", zap.String("soil", in.SoilType), zap.String("crop", in.CropType), zap.Error(err))
		return Result{}, err
	}

	id := s.newID()
	perHectare, err := s.predictor.Predict(ctx, features)
	if err != nil {
		var mie *ModelInferenceError
		if !errors.As(err, &mie) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = &ModelInferenceError{ModelID: s.predictor.ModelID(), Err: err}
		}
		s.logger.Warn("prediction failed",
			zap.String("request_id", id),
			zap.Any("features", features),
			zap.Error(err))
		return Result{}, err
	}

	metrics, err := DeriveMetrics(in.AreaHectares, perHectare, in.MSP, float64(in.SackSizeKg))
	if err != nil {
		s.logger.Warn("derive metrics failed", zap.String("request_id", id), zap.Int("sack_size_kg", in.SackSizeKg), zap.Error(err))
		return Result{}, fmt.Errorf("derive metrics: %w", err)
	}

	s.logger.Info("prediction complete",
		zap.String("request_id", id),
		zap.String("soil", in.SoilType),
		zap.String("crop", in.CropType),
		zap.Int("year", in.Year),
		zap.Float64("area_ha", in.AreaHectares),
		zap.Float64("yield_per_ha", perHectare),
		zap.Float64("total_yield_kg", metrics.TotalYieldKg))

	return Result{
		RequestID:       id,
		ModelID:         s.predictor.ModelID(),
		Input:           in,
		Features:        features,
		YieldPerHectare: perHectare,
		AreaAcres:       HectaresToAcres(in.AreaHectares),
		Metrics:         metrics,
	}, nil
}

// PredictBatch predicts every record independently. Records that failed to
// parse or validate keep their error; the rest are predicted one at a time.
// validate may be nil.
func (s *Service) PredictBatch(ctx context.Context, records []BatchRecord, validate func(Input) error) []BatchRow {
	rows := make([]BatchRow, 0, len(records))
	failed := 0
	for _, rec := range records {
		row := BatchRow{Line: rec.Line, Input: rec.Input, Err: rec.Err}
		if row.Err == nil && validate != nil {
			row.Err = validate(rec.Input)
		}
		if row.Err == nil {
			if err := ctx.Err(); err != nil {
				row.Err = err
			} else {
				res, err := s.Predict(ctx, rec.Input)
				row.Result, row.Err = res, err
			}
		}
		if row.Err != nil {
			failed++
		}
		rows = append(rows, row)
	}
	s.logger.Info("batch complete", zap.Int("rows", len(rows)), zap.Int("failed", failed))
	return rows
}
