package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"yashubustudio/cropyield/cropyield"
)

type uiState struct {
	deps

	w           fyne.Window
	soil        *widget.Select
	crop        *widget.Select
	recommended *widget.Label
	year        *widget.Entry
	area        *widget.Entry
	acres       *widget.Label
	msp         *widget.Entry
	sack        *widget.Select

	predictBtn *widget.Button
	batchBtn   *widget.Button

	yield   *widget.Label
	sacks   *widget.Label
	revenue *widget.Label
	status  *widget.Label

	batchRows []cropyield.BatchRow
}

func buildUI(a fyne.App, d deps) *uiState {
	u := &uiState{deps: d}
	u.w = a.NewWindow(cropyield.AppTitle)
	catalog := d.svc.Catalog()
	defaults := d.cfg.Form.DefaultInput(catalog)

	u.crop = widget.NewSelect(nil, nil)
	u.recommended = widget.NewLabel("")
	u.recommended.Wrapping = fyne.TextWrapWord
	u.soil = widget.NewSelect(catalog.SoilTypes(), u.onSoilChanged)

	u.year = widget.NewEntry()
	u.year.SetPlaceHolder(fmt.Sprintf("%d-%d", d.cfg.Form.YearMin, d.cfg.Form.YearMax))
	u.year.SetText(strconv.Itoa(defaults.Year))
	u.year.Validator = func(text string) error {
		year, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return errors.New("whole number required")
		}
		if year < d.cfg.Form.YearMin || year > d.cfg.Form.YearMax {
			return fmt.Errorf("between %d and %d", d.cfg.Form.YearMin, d.cfg.Form.YearMax)
		}
		return nil
	}

	u.acres = widget.NewLabel("")
	u.area = widget.NewEntry()
	u.area.SetPlaceHolder("hectares")
	u.area.Validator = nonNegative
	u.area.OnChanged = u.onAreaChanged
	u.area.SetText("0")
	u.onAreaChanged(u.area.Text)
	areaDown := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() { u.stepArea(-d.cfg.Form.AreaStep) })
	areaUp := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() { u.stepArea(d.cfg.Form.AreaStep) })

	u.msp = widget.NewEntry()
	u.msp.SetPlaceHolder("per kg")
	u.msp.SetText(strconv.FormatFloat(defaults.MSP, 'f', -1, 64))
	u.msp.Validator = nonNegative

	sizes := d.cfg.Form.SackSizes()
	sackOptions := make([]string, len(sizes))
	for i, s := range sizes {
		sackOptions[i] = strconv.Itoa(s)
	}
	u.sack = widget.NewSelect(sackOptions, nil)
	u.sack.SetSelected(strconv.Itoa(defaults.SackSizeKg))

	u.soil.SetSelected(defaults.SoilType)
	if defaults.CropType != "" {
		u.crop.SetSelected(defaults.CropType)
	}

	u.yield = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.sacks = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.revenue = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.status = widget.NewLabel(fmt.Sprintf("Model: %s", d.svc.ModelID()))

	u.predictBtn = widget.NewButtonWithIcon("Predict Yield", theme.ConfirmIcon(), func() { u.onPredict() })
	u.predictBtn.Importance = widget.HighImportance
	u.batchBtn = widget.NewButtonWithIcon("Batch File", theme.FolderOpenIcon(), func() { u.onBatch() })

	form := widget.NewForm(
		widget.NewFormItem("Soil Type", u.soil),
		widget.NewFormItem("Crop Type", u.crop),
		widget.NewFormItem("Year", u.year),
		widget.NewFormItem("Irrigated Area (ha)", container.NewBorder(nil, nil, nil, container.NewHBox(areaDown, areaUp), u.area)),
		widget.NewFormItem("", u.acres),
		widget.NewFormItem("MSP per kg", u.msp),
		widget.NewFormItem("Sack Size (kg)", u.sack),
	)

	logLabel := widget.NewLabelWithData(d.logs)
	logLabel.Wrapping = fyne.TextWrapWord
	logScroll := container.NewVScroll(logLabel)
	logScroll.SetMinSize(fyne.NewSize(200, 120))

	content := container.NewVBox(
		widget.NewLabelWithStyle(cropyield.AppTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		form,
		u.recommended,
		container.NewGridWithColumns(2, u.predictBtn, u.batchBtn),
		widget.NewSeparator(),
		u.yield,
		u.sacks,
		u.revenue,
		u.status,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Log", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		logScroll,
	)

	panel := container.NewStack(canvas.NewRectangle(color.NRGBA{R: 255, G: 255, B: 255, A: 215}), container.NewPadded(content))
	var root fyne.CanvasObject = container.NewPadded(panel)
	if d.bg != nil {
		img := canvas.NewImageFromResource(fyne.NewStaticResource(d.bg.Name(), d.bg.Data))
		img.FillMode = canvas.ImageFillStretch
		root = container.NewStack(img, root)
	}

	u.w.SetContent(root)
	u.w.Resize(fyne.NewSize(720, 860))
	return u
}

func (u *uiState) onSoilChanged(soil string) {
	crops, err := u.svc.Catalog().RecommendedCrops(soil)
	if err != nil {
		u.crop.Options = nil
		u.crop.ClearSelected()
		u.recommended.SetText("")
		return
	}
	u.crop.Options = crops
	u.crop.ClearSelected()
	if len(crops) > 0 {
		u.crop.SetSelected(crops[0])
	}
	u.crop.Refresh()
	u.recommended.SetText(fmt.Sprintf("Recommended Crops for %s: %s", soil, strings.Join(crops, ", ")))
}

func (u *uiState) onAreaChanged(text string) {
	ha, err := parseNumber(text)
	if err != nil || ha < 0 {
		u.acres.SetText("Irrigated Area: enter hectares (0 or more)")
		return
	}
	u.acres.SetText(u.formatter.AreaLine(ha))
}

// stepArea nudges the area by delta, clamped at zero and rounded to 0.01 ha.
func (u *uiState) stepArea(delta float64) {
	ha, err := parseNumber(u.area.Text)
	if err != nil || ha < 0 {
		ha = 0
	}
	ha = math.Max(0, math.Round((ha+delta)*100)/100)
	u.area.SetText(strconv.FormatFloat(ha, 'f', -1, 64))
}

func (u *uiState) readInput() (cropyield.Input, error) {
	in := cropyield.Input{
		SoilType: u.soil.Selected,
		CropType: u.crop.Selected,
	}
	if in.SoilType == "" || in.CropType == "" {
		return in, fmt.Errorf("%w: choose a soil type and a crop type", cropyield.ErrInvalidInput)
	}
	year, err := strconv.Atoi(strings.TrimSpace(u.year.Text))
	if err != nil {
		return in, fmt.Errorf("%w: year %q is not a whole number", cropyield.ErrInvalidInput, u.year.Text)
	}
	in.Year = year
	if in.AreaHectares, err = parseNumber(u.area.Text); err != nil {
		return in, fmt.Errorf("%w: irrigated area %q is not a number", cropyield.ErrInvalidInput, u.area.Text)
	}
	if in.MSP, err = parseNumber(u.msp.Text); err != nil {
		return in, fmt.Errorf("%w: MSP %q is not a number", cropyield.ErrInvalidInput, u.msp.Text)
	}
	if in.SackSizeKg, err = strconv.Atoi(u.sack.Selected); err != nil {
		return in, fmt.Errorf("%w: choose a sack size", cropyield.ErrInvalidInput)
	}
	return in, nil
}

// onPredict runs the model on the button press itself; the result labels
// are updated before the handler returns.
func (u *uiState) onPredict() {
	in, err := u.readInput()
	if err == nil {
		err = u.cfg.Form.ValidateInput(in)
	}
	if err != nil {
		u.showFailure(err)
		return
	}
	res, err := u.svc.Predict(context.Background(), in)
	if err != nil {
		u.showFailure(err)
		return
	}
	summary := u.formatter.Summarize(res)
	u.yield.SetText(summary.Yield)
	u.sacks.SetText(summary.Sacks)
	u.revenue.SetText(summary.Revenue)
	u.status.SetText(fmt.Sprintf("Model: %s (request %s)", res.ModelID, res.RequestID))
}

func (u *uiState) showFailure(err error) {
	u.yield.SetText("")
	u.sacks.SetText("")
	u.revenue.SetText("")
	u.status.SetText("Prediction failed")
	dialog.ShowError(err, u.w)
}

func (u *uiState) onBatch() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		if err := u.runBatch(path); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.saveBatch()
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter(cropyield.InputExtensions))
	fd.Show()
}

func (u *uiState) runBatch(path string) error {
	records, err := cropyield.ReadBatchFile(path, cropyield.BatchParseOptions{
		Defaults: u.cfg.Form.DefaultInput(u.svc.Catalog()),
	})
	if err != nil {
		return err
	}
	start := time.Now()
	u.batchRows = u.svc.PredictBatch(context.Background(), records, u.cfg.Form.SelectionValidator(u.svc.Catalog()))
	ok := 0
	for _, row := range u.batchRows {
		if row.OK() {
			ok++
		}
	}
	u.status.SetText(fmt.Sprintf("%s: %d of %d rows predicted (%.1fs)",
		filepath.Base(path), ok, len(u.batchRows), time.Since(start).Seconds()))
	return nil
}

func (u *uiState) saveBatch() {
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if uc == nil {
			return
		}
		defer uc.Close()
		if err := cropyield.WriteResultsAs(uc, uc.URI().Extension(), u.batchRows, u.bg, u.formatter); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.logger.Info("batch results saved", zap.String("path", uc.URI().Path()), zap.Int("rows", len(u.batchRows)))
	}, u.w)
	fd.SetFileName(filepath.Base(cropyield.DefaultResultPath("", time.Now())))
	fd.SetFilter(storage.NewExtensionFileFilter(cropyield.OutputExtensions))
	fd.Show()
}

func nonNegative(text string) error {
	v, err := parseNumber(text)
	if err != nil {
		return errors.New("number required")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// parseNumber rejects NaN and Inf, which strconv accepts.
func parseNumber(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return v, nil
}
