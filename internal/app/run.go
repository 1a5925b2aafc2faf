package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"yashubustudio/cropyield/cropyield"
)

const fyneAppID = "studio.yashubu.cropyield"

// Run loads the configuration, catalog, background image and model, then
// shows the form. A missing asset stops startup with an error window.
func Run(cfgPath string) error {
	a := fyneapp.NewWithID(fyneAppID)

	cfg, err := cropyield.LoadConfig(cfgPath)
	if err != nil {
		err = fmt.Errorf("load config: %w", err)
		showFatalError(a, err)
		return err
	}

	logs := binding.NewString()
	logger, err := cropyield.NewLogger(cfg.LogLevel, newLogCapture(logs, logLineLimit))
	if err != nil {
		showFatalError(a, err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	d, err := loadDeps(cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		showFatalError(a, err)
		return err
	}
	d.logs = logs
	defer d.svc.Close()

	u := buildUI(a, d)
	logger.Info("ready", zap.String("model_id", d.svc.ModelID()), zap.String("background", d.bg.Path))
	u.w.ShowAndRun()
	return nil
}

func loadDeps(cfg cropyield.Config, logger *zap.Logger) (deps, error) {
	bg, err := cropyield.LoadBackground(cfg.BackgroundPath)
	if err != nil {
		return deps{}, fmt.Errorf("load background: %w", err)
	}
	formatter, err := cropyield.NewFormatter(cfg.Display)
	if err != nil {
		return deps{}, err
	}
	svc, err := cropyield.OpenService(cfg, logger)
	if err != nil {
		return deps{}, err
	}
	return deps{cfg: cfg, svc: svc, formatter: formatter, bg: bg, logger: logger}, nil
}

func showFatalError(a fyne.App, err error) {
	w := a.NewWindow(cropyield.AppTitle)
	label := widget.NewLabel(err.Error())
	label.Wrapping = fyne.TextWrapWord
	w.SetContent(label)
	w.Resize(fyne.NewSize(520, 200))
	dialog.ShowError(err, w)
	w.ShowAndRun()
}
