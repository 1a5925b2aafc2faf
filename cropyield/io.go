package cropyield

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// BatchRecord is one parsed input row. Err holds a per-row parse failure;
// the remaining rows are still usable.
type BatchRecord struct {
	Line  int
	Input Input
	Err   error
}

// BatchRow is the outcome of predicting one BatchRecord.
type BatchRow struct {
	Line   int
	Input  Input
	Result Result
	Err    error
}

// OK reports whether the row produced a result.
func (r BatchRow) OK() bool {
	return r.Err == nil
}

// BatchParseOptions controls column detection and fallbacks for absent columns.
type BatchParseOptions struct {
	Columns ColumnCandidates
	// Defaults supplies year, MSP and sack size when the file has no such column.
	Defaults Input
	// Sheet selects the worksheet of an .xlsx file; empty means the first sheet.
	Sheet string
}

// InputExtensions lists the batch file types ReadBatchFile accepts.
var InputExtensions = []string{".csv", ".tsv", ".xlsx"}

// ReadBatchFile reads a CSV, TSV or XLSX file with a header row.
func ReadBatchFile(path string, opts BatchParseOptions) ([]BatchRecord, error) {
	rows, err := readRows(path, opts.Sheet)
	if err != nil {
		return nil, err
	}
	records, err := ParseBatchRows(rows, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return records, nil
}

func readRows(path, sheet string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readDelimited(path, ',')
	case ".tsv":
		return readDelimited(path, '\t')
	case ".xlsx":
		return readWorkbook(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported batch file type %q", ext)
	}
}

func readDelimited(path string, comma rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s has no worksheets", filepath.Base(path))
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

type batchColumns struct {
	soil, crop, year, area, msp, sack int
}

// ParseBatchRows converts raw rows (header first) into records.
// Soil, crop and area columns are required.
func ParseBatchRows(rows [][]string, opts BatchParseOptions) ([]BatchRecord, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty batch file")
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	candidates := opts.Columns.WithDefaults()
	cols := batchColumns{
		soil: findColumn(header, candidates.Soil),
		crop: findColumn(header, candidates.Crop),
		year: findColumn(header, candidates.Year),
		area: findColumn(header, candidates.Area),
		msp:  findColumn(header, candidates.MSP),
		sack: findColumn(header, candidates.Sack),
	}
	var missing []string
	if cols.soil < 0 {
		missing = append(missing, "soil")
	}
	if cols.crop < 0 {
		missing = append(missing, "crop")
	}
	if cols.area < 0 {
		missing = append(missing, "area")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	records := make([]BatchRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, parseRecord(i+2, row, cols, opts.Defaults))
	}
	if len(records) == 0 {
		return nil, errors.New("no data rows")
	}
	return records, nil
}

func parseRecord(line int, row []string, cols batchColumns, defaults Input) BatchRecord {
	rec := BatchRecord{Line: line, Input: Input{
		SoilType:   cellAt(row, cols.soil),
		CropType:   cellAt(row, cols.crop),
		Year:       defaults.Year,
		MSP:        defaults.MSP,
		SackSizeKg: defaults.SackSizeKg,
	}}
	var err error
	if rec.Input.AreaHectares, err = parseFloatCell("area", cellAt(row, cols.area)); err != nil {
		rec.Err = fmt.Errorf("line %d: %w", line, err)
		return rec
	}
	if v := cellAt(row, cols.year); v != "" {
		if rec.Input.Year, err = parseIntCell("year", v); err != nil {
			rec.Err = fmt.Errorf("line %d: %w", line, err)
			return rec
		}
	}
	if v := cellAt(row, cols.msp); v != "" {
		if rec.Input.MSP, err = parseFloatCell("msp", v); err != nil {
			rec.Err = fmt.Errorf("line %d: %w", line, err)
			return rec
		}
	}
	if v := cellAt(row, cols.sack); v != "" {
		if rec.Input.SackSizeKg, err = parseIntCell("sack size", v); err != nil {
			rec.Err = fmt.Errorf("line %d: %w", line, err)
			return rec
		}
	}
	return rec
}

// thousandsGrouped matches numbers such as "1,234" or "12,345,678.5".
var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseFloatCell accepts comma thousands separators only. A decimal comma
// such as "2,5" is an error rather than 25.
func parseFloatCell(name, v string) (float64, error) {
	if v == "" {
		return 0, invalidInputf("%s is empty", name)
	}
	digits := v
	if strings.Contains(v, ",") {
		if !thousandsGrouped.MatchString(v) {
			return 0, invalidInputf("%s %q is not a number", name, v)
		}
		digits = strings.ReplaceAll(v, ",", "")
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, invalidInputf("%s %q is not a number", name, v)
	}
	return f, nil
}

// parseIntCell accepts "2023" as well as spreadsheet-style "2023.0".
func parseIntCell(name, v string) (int, error) {
	f, err := parseFloatCell(name, v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, invalidInputf("%s %q is not a whole number", name, v)
	}
	return int(f), nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if cleanCell(cell) != "" {
			return false
		}
	}
	return true
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}
