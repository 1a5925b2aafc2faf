package cropyield

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenCatalogWarnsAboutIssues(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	catalog, err := OpenCatalog(DefaultConfig(), zap.New(core))
	require.NoError(t, err)
	assert.Len(t, catalog.Issues(), 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Paddy", entries[0].ContextMap()["crop"])
}

func TestOpenCatalogStrict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictCatalog = true
	_, err := OpenCatalog(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestOpenService(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ModelConfig{Kind: ModelLinear, Path: writeFile(t, "linear.yaml", []byte("intercept: 1000\ncoefficients: [0, 0, 0, 0]\n"))}

	svc, err := OpenService(cfg, nil)
	require.NoError(t, err)
	defer svc.Close()
	assert.Equal(t, "linear.yaml", svc.ModelID())

	res, err := svc.Predict(context.Background(), Input{SoilType: "Silty", CropType: "Soybean", Year: 2024, AreaHectares: 3, MSP: 40, SackSizeKg: 100})
	require.NoError(t, err)
	assert.Equal(t, Metrics{TotalYieldKg: 3000, TotalSacks: 30, TotalRevenue: 120000}, res.Metrics)
}

func TestOpenServiceMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.Path = filepath.Join(t.TempDir(), "absent.onnx")
	_, err := OpenService(cfg, nil)
	assert.ErrorIs(t, err, ErrAssetLoad)
}
