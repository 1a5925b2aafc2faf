package cropyield

import (
	"fmt"

	"go.uber.org/zap"
)

// OpenCatalog loads the configured catalog. Table entries outside the
// vocabularies are logged, or fail startup when StrictCatalog is set.
func OpenCatalog(cfg Config, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	def, err := LoadCatalogDef(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	catalog, err := NewCatalog(def)
	if err != nil {
		return nil, err
	}
	if cfg.StrictCatalog {
		if err := catalog.Strict(); err != nil {
			return nil, err
		}
	}
	for _, issue := range catalog.Issues() {
		logger.Warn("recommended crop cannot be predicted",
			zap.String("soil", issue.Soil),
			zap.String("crop", issue.Crop),
			zap.String("reason", issue.Reason))
	}
	return catalog, nil
}

// OpenService loads the catalog and the model described by cfg.
func OpenService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog, err := OpenCatalog(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	predictor, err := OpenPredictor(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	logger.Info("model loaded",
		zap.String("model_id", predictor.ModelID()),
		zap.String("kind", string(cfg.Model.Kind)),
		zap.String("path", cfg.Model.Path))
	return NewService(predictor, catalog, logger)
}
