package cropyield

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var resultHeader = []string{
	"line",
	"soil_type",
	"crop_type",
	"year",
	"area_ha",
	"area_acres",
	"msp",
	"sack_size_kg",
	"yield_per_ha",
	"total_yield_kg",
	"total_sacks",
	"total_revenue",
	"request_id",
	"error",
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func (r BatchRow) record() []string {
	in := r.Input
	rec := []string{
		strconv.Itoa(r.Line),
		in.SoilType,
		in.CropType,
		strconv.Itoa(in.Year),
		formatFloat(in.AreaHectares, -1),
		formatFloat(HectaresToAcres(in.AreaHectares), 2),
		formatFloat(in.MSP, -1),
		strconv.Itoa(in.SackSizeKg),
	}
	if r.Err != nil {
		return append(rec, "", "", "", "", "", r.Err.Error())
	}
	m := r.Result.Metrics
	return append(rec,
		formatFloat(r.Result.YieldPerHectare, 4),
		formatFloat(m.TotalYieldKg, 2),
		formatFloat(m.TotalSacks, 2),
		formatFloat(m.TotalRevenue, 2),
		r.Result.RequestID,
		"",
	)
}

// WriteResultsCSV writes one line per batch row, failures included.
func WriteResultsCSV(w io.Writer, rows []BatchRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteResultsXLSX writes the batch rows to a single "Predictions" sheet.
func WriteResultsXLSX(w io.Writer, rows []BatchRow) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Predictions"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	for i, h := range resultHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, style)
	}

	for i, r := range rows {
		line := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, line)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, r.Line)
		write(2, r.Input.SoilType)
		write(3, r.Input.CropType)
		write(4, r.Input.Year)
		write(5, r.Input.AreaHectares)
		write(6, HectaresToAcres(r.Input.AreaHectares))
		write(7, r.Input.MSP)
		write(8, r.Input.SackSizeKg)
		if r.Err != nil {
			write(14, r.Err.Error())
			continue
		}
		write(9, r.Result.YieldPerHectare)
		write(10, r.Result.Metrics.TotalYieldKg)
		write(11, r.Result.Metrics.TotalSacks)
		write(12, r.Result.Metrics.TotalRevenue)
		write(13, r.Result.RequestID)
	}

	_ = f.SetColWidth(sheet, "A", "A", 6)
	_ = f.SetColWidth(sheet, "B", "C", 14)
	_ = f.SetColWidth(sheet, "D", "L", 14)
	_ = f.SetColWidth(sheet, "M", "M", 38)
	_ = f.SetColWidth(sheet, "N", "N", 48)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 2rem; background-size: cover; background-attachment: fixed; }
{{.BackgroundCSS}}
main { background: rgba(255, 255, 255, 0.88); border-radius: 8px; padding: 1.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
td.error { color: #b00020; }
</style>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<p>Generated {{.Generated}}{{if .ModelID}} with model {{.ModelID}}{{end}}.</p>
<table>
<thead><tr><th>Line</th><th>Soil</th><th>Crop</th><th>Year</th><th>Irrigated Area</th><th>Yield</th><th>Sacks</th><th>Revenue</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Line}}</td><td>{{.Soil}}</td><td>{{.Crop}}</td><td>{{.Year}}</td><td>{{.Area}}</td>
{{if .Error}}<td class="error" colspan="3">{{.Error}}</td>{{else}}<td>{{.Yield}}</td><td>{{.Sacks}}</td><td>{{.Revenue}}</td>{{end}}
</tr>
{{end}}</tbody>
</table>
</main>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportRow struct {
	Line    int
	Soil    string
	Crop    string
	Year    int
	Area    string
	Yield   string
	Sacks   string
	Revenue string
	Error   string
}

type reportData struct {
	Title         string
	Generated     string
	ModelID       string
	BackgroundCSS template.CSS
	Rows          []reportRow
}

// WriteHTMLReport renders the batch rows as a standalone page with the
// background image inlined. bg may be nil.
func WriteHTMLReport(w io.Writer, rows []BatchRow, bg *Background, f *Formatter) error {
	data := reportData{
		Title:     AppTitle,
		Generated: time.Now().Format("2006-01-02 15:04"),
	}
	if bg != nil {
		data.BackgroundCSS = template.CSS(fmt.Sprintf("body { background-image: url(%q); }", bg.DataURI()))
	}
	for _, r := range rows {
		rr := reportRow{
			Line: r.Line,
			Soil: r.Input.SoilType,
			Crop: r.Input.CropType,
			Year: r.Input.Year,
			Area: f.Acres(HectaresToAcres(r.Input.AreaHectares)),
		}
		if r.Err != nil {
			rr.Error = r.Err.Error()
		} else {
			rr.Yield = f.YieldKg(r.Result.Metrics.TotalYieldKg)
			rr.Sacks = f.Sacks(r.Result.Metrics.TotalSacks)
			rr.Revenue = f.Revenue(r.Result.Metrics.TotalRevenue)
			if data.ModelID == "" {
				data.ModelID = r.Result.ModelID
			}
		}
		data.Rows = append(data.Rows, rr)
	}
	return reportTmpl.Execute(w, data)
}

// DefaultResultPath returns dir/result_<timestamp>.csv.
func DefaultResultPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("result_%s.csv", now.Format("20060102150405")))
}

// WriteResultsAs writes rows in the format named by ext (.csv, .xlsx, .html).
func WriteResultsAs(w io.Writer, ext string, rows []BatchRow, bg *Background, f *Formatter) error {
	switch strings.ToLower(ext) {
	case ".csv":
		return WriteResultsCSV(w, rows)
	case ".xlsx":
		return WriteResultsXLSX(w, rows)
	case ".html", ".htm":
		return WriteHTMLReport(w, rows, bg, f)
	default:
		return fmt.Errorf("unsupported output type %q", ext)
	}
}

// OutputExtensions lists the extensions WriteResultsAs understands.
var OutputExtensions = []string{".csv", ".xlsx", ".html", ".htm"}

// WriteResults writes rows to path, choosing the format by extension.
// Parent directories are created.
func WriteResults(path string, rows []BatchRow, bg *Background, f *Formatter) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(OutputExtensions, ext) {
		return fmt.Errorf("unsupported output type %q", ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	err = WriteResultsAs(out, ext, rows, bg, f)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
