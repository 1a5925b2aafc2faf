package cropyield

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger on stderr at the given level. Each extra
// sink receives the same entries in console format, which is how the
// desktop app mirrors logs into its log panel.
func NewLogger(level string, sinks ...zapcore.WriteSyncer) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(os.Stderr), lvl),
	}
	consoleCfg := encCfg
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	for _, sink := range sinks {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), sink, lvl))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
