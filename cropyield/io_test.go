package cropyield

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func batchDefaults() BatchParseOptions {
	return BatchParseOptions{Defaults: DefaultConfig().Form.DefaultInput(DefaultCatalog())}
}

func TestReadBatchFileCSV(t *testing.T) {
	content := "\ufeffSoil Type,Crop,Year,Area_ha,MSP,Sack Size\n" +
		"Loamy,Wheat,2021,10,20,75\n" +
		",,,,,\n" +
		"Sandy, Maize ,,2.5,,\n" +
		"Silty,Barley,2022,,20,50\n" +
		"Silty,Barley,20x2,1,20,50\n"
	path := writeFile(t, "batch.csv", []byte(content))

	records, err := ReadBatchFile(path, batchDefaults())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, BatchRecord{Line: 2, Input: Input{SoilType: "Loamy", CropType: "Wheat", Year: 2021, AreaHectares: 10, MSP: 20, SackSizeKg: 75}}, records[0])
	assert.Equal(t, BatchRecord{Line: 4, Input: Input{SoilType: "Sandy", CropType: "Maize", Year: 2023, AreaHectares: 2.5, MSP: 100, SackSizeKg: 50}}, records[1])

	assert.Equal(t, 5, records[2].Line)
	assert.ErrorIs(t, records[2].Err, ErrInvalidInput)
	assert.Contains(t, records[2].Err.Error(), "line 5")

	assert.Equal(t, 6, records[3].Line)
	assert.ErrorIs(t, records[3].Err, ErrInvalidInput)
}

func TestReadBatchFileTSV(t *testing.T) {
	path := writeFile(t, "batch.tsv", []byte("soil\tcrop\thectares\tyear\nClayey\tSugarcane\t1,200.5\t2025.0\n"))

	records, err := ReadBatchFile(path, batchDefaults())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NoError(t, records[0].Err)
	assert.Equal(t, 1200.5, records[0].Input.AreaHectares)
	assert.Equal(t, 2025, records[0].Input.Year)
}

func TestReadBatchFileXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	f := excelize.NewFile()
	rows := [][]any{
		{"soil_type", "crop_type", "area"},
		{"Alluvial", "Rice", 4},
		{"Loamy", "Bajra", 0.5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	records, err := ReadBatchFile(path, batchDefaults())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alluvial", records[0].Input.SoilType)
	assert.Equal(t, 4.0, records[0].Input.AreaHectares)
	assert.Equal(t, 0.5, records[1].Input.AreaHectares)
	assert.Equal(t, 50, records[1].Input.SackSizeKg)
}

func TestParseBatchRowsCustomColumns(t *testing.T) {
	opts := batchDefaults()
	opts.Columns = ColumnCandidates{Soil: []string{"mitti"}}
	records, err := ParseBatchRows([][]string{{"Mitti", "crop", "area"}, {"Loamy", "Rice", "3"}}, opts)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Loamy", records[0].Input.SoilType)
}

func TestParseBatchRowsCommaNumbers(t *testing.T) {
	cases := map[string]struct {
		area string
		want float64
		ok   bool
	}{
		"grouped":          {area: "1,234.5", want: 1234.5, ok: true},
		"grouped millions": {area: "12,345,678", want: 12345678, ok: true},
		"plain":            {area: "2.5", want: 2.5, ok: true},
		"decimal comma":    {area: "2,5", ok: false},
		"bad grouping":     {area: "12,34", ok: false},
		"trailing comma":   {area: "1,234,", ok: false},
		"comma fraction":   {area: "1.234,5", ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			records, err := ParseBatchRows([][]string{{"soil", "crop", "area"}, {"Loamy", "Wheat", tc.area}}, batchDefaults())
			require.NoError(t, err)
			require.Len(t, records, 1)
			if !tc.ok {
				require.ErrorIs(t, records[0].Err, ErrInvalidInput)
				assert.Contains(t, records[0].Err.Error(), "not a number")
				return
			}
			require.NoError(t, records[0].Err)
			assert.Equal(t, tc.want, records[0].Input.AreaHectares)
		})
	}
}

func TestParseBatchRowsErrors(t *testing.T) {
	_, err := ParseBatchRows(nil, batchDefaults())
	assert.Error(t, err)

	_, err = ParseBatchRows([][]string{{"soil", "year"}, {"Loamy", "2020"}}, batchDefaults())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crop, area")

	_, err = ParseBatchRows([][]string{{"soil", "crop", "area"}, {"", " ", ""}}, batchDefaults())
	assert.Error(t, err)
}

func TestReadBatchFileUnsupported(t *testing.T) {
	_, err := ReadBatchFile(writeFile(t, "batch.json", []byte("[]")), batchDefaults())
	assert.Error(t, err)
}
