package app

import (
	"fyne.io/fyne/v2/data/binding"
	"go.uber.org/zap"

	"yashubustudio/cropyield/cropyield"
)

// deps are loaded once at startup and shared by the window.
type deps struct {
	cfg       cropyield.Config
	svc       *cropyield.Service
	formatter *cropyield.Formatter
	bg        *cropyield.Background
	logger    *zap.Logger
	logs      binding.String
}
