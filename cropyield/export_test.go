package cropyield

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []BatchRow {
	in := Input{SoilType: "Loamy", CropType: "Wheat", Year: 2023, AreaHectares: 10, MSP: 20, SackSizeKg: 50}
	return []BatchRow{
		{
			Line:  2,
			Input: in,
			Result: Result{
				RequestID:       "req-1",
				ModelID:         "model.onnx",
				Input:           in,
				YieldPerHectare: 5000,
				AreaAcres:       24.7,
				Metrics:         Metrics{TotalYieldKg: 50000, TotalSacks: 1000, TotalRevenue: 1000000},
			},
		},
		{
			Line:  3,
			Input: Input{SoilType: "Clayey", CropType: "Paddy", Year: 2023, AreaHectares: 1, SackSizeKg: 50},
			Err:   &UnknownLabelError{Field: "crop type", Label: "Paddy"},
		},
	}
}

func TestWriteResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, resultHeader, records[0])
	assert.Equal(t, []string{"2", "Loamy", "Wheat", "2023", "10", "24.70", "20", "50", "5000.0000", "50000.00", "1000.00", "1000000.00", "req-1", ""}, records[1])
	assert.Equal(t, `unknown crop type "Paddy"`, records[2][13])
	assert.Empty(t, records[2][9])
}

func TestWriteResultsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsXLSX(&buf, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Predictions"}, f.GetSheetList())

	rows, err := f.GetRows("Predictions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, resultHeader, rows[0])
	assert.Equal(t, "Loamy", rows[1][1])
	assert.Equal(t, "50000", rows[1][9])
	assert.Equal(t, "req-1", rows[1][12])
	assert.Equal(t, `unknown crop type "Paddy"`, rows[2][13])
}

func TestWriteHTMLReport(t *testing.T) {
	f, err := NewFormatter(DefaultConfig().Display)
	require.NoError(t, err)
	bg := &Background{Path: "bg.png", Data: pngHeader, MIMEType: "image/png"}

	var buf bytes.Buffer
	require.NoError(t, WriteHTMLReport(&buf, sampleRows(), bg, f))
	out := buf.String()

	assert.Contains(t, out, AppTitle)
	assert.Contains(t, out, "model model.onnx")
	assert.Contains(t, out, "url(\"data:image/png;base64,")
	assert.Contains(t, out, "50000.00 kg")
	assert.Contains(t, out, "1000 sacks")
	assert.Contains(t, out, "₹1,000,000.00")
	assert.Contains(t, out, "unknown crop type &#34;Paddy&#34;")

	buf.Reset()
	require.NoError(t, WriteHTMLReport(&buf, sampleRows(), nil, f))
	assert.NotContains(t, buf.String(), "background-image")
}

func TestWriteResultsDispatch(t *testing.T) {
	f, err := NewFormatter(DefaultConfig().Display)
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "results")

	for _, name := range []string{"out.csv", "out.xlsx", "out.html"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteResults(path, sampleRows(), nil, f), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	err = WriteResults(filepath.Join(dir, "out.pdf"), sampleRows(), nil, f)
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "out.pdf"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestDefaultResultPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := DefaultResultPath("results", now)
	assert.Equal(t, filepath.Join("results", "result_20240305140709.csv"), got)
	assert.True(t, strings.HasSuffix(got, ".csv"))
}
