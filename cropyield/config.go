package cropyield

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "config.yaml"
	defaultMSP        = 100
)

// ModelKind selects the predictor implementation.
type ModelKind string

const (
	// ModelONNX runs an ONNX artifact through onnxruntime.
	ModelONNX ModelKind = "onnx"
	// ModelLinear evaluates an intercept plus one coefficient per feature.
	ModelLinear ModelKind = "linear"
)

// ModelConfig locates the model artifact and describes its tensor names.
type ModelConfig struct {
	Kind       ModelKind `yaml:"kind"`
	Path       string    `yaml:"path"`
	OrtLibrary string    `yaml:"ortLibrary,omitempty"`
	InputName  string    `yaml:"inputName,omitempty"`
	OutputName string    `yaml:"outputName,omitempty"`
	ModelID    string    `yaml:"modelId,omitempty"`
}

// FormConfig holds the bounds and defaults of the input form.
type FormConfig struct {
	YearMin     int     `yaml:"yearMin"`
	YearMax     int     `yaml:"yearMax"`
	DefaultYear int     `yaml:"defaultYear"`
	DefaultMSP  float64 `yaml:"defaultMsp"`
	SackMin     int     `yaml:"sackMin"`
	SackMax     int     `yaml:"sackMax"`
	SackStep    int     `yaml:"sackStep"`
	DefaultSack int     `yaml:"defaultSack"`
	AreaStep    float64 `yaml:"areaStep"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Locale         string `yaml:"locale"`
	Currency       string `yaml:"currency"`
	CurrencySymbol string `yaml:"currencySymbol"`
}

// Config aggregates runtime settings persisted to config.yaml.
type Config struct {
	Model          ModelConfig   `yaml:"model"`
	BackgroundPath string        `yaml:"backgroundPath"`
	CatalogPath    string        `yaml:"catalogPath,omitempty"`
	StrictCatalog  bool          `yaml:"strictCatalog"`
	Form           FormConfig    `yaml:"form"`
	Display        DisplayConfig `yaml:"display"`
	LogLevel       string        `yaml:"logLevel"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	cfg := seededConfig()
	cfg.ApplyDefaults()
	return cfg
}

// seededConfig pre-fills the fields whose zero value is a legal setting,
// so a file that spells out the zero keeps it.
func seededConfig() Config {
	return Config{Form: FormConfig{DefaultMSP: defaultMSP}}
}

// ApplyDefaults populates zero values with sensible defaults.
// Form.DefaultMSP is left alone: 0 is a valid price.
func (c *Config) ApplyDefaults() {
	if c.Model.Kind == "" {
		c.Model.Kind = ModelONNX
	}
	if c.Model.Path == "" {
		c.Model.Path = "./models/crop_yield_model.onnx"
	}
	if c.Model.InputName == "" {
		c.Model.InputName = "float_input"
	}
	if c.Model.OutputName == "" {
		c.Model.OutputName = "variable"
	}
	if c.Model.ModelID == "" {
		c.Model.ModelID = filepath.Base(c.Model.Path)
	}
	if c.BackgroundPath == "" {
		c.BackgroundPath = "./assets/background.jpg"
	}
	if c.Form.YearMin == 0 {
		c.Form.YearMin = 2000
	}
	if c.Form.YearMax == 0 {
		c.Form.YearMax = 2030
	}
	if c.Form.DefaultYear == 0 {
		c.Form.DefaultYear = 2023
	}
	if c.Form.SackMin == 0 {
		c.Form.SackMin = 50
	}
	if c.Form.SackMax == 0 {
		c.Form.SackMax = 100
	}
	if c.Form.SackStep == 0 {
		c.Form.SackStep = 5
	}
	if c.Form.DefaultSack == 0 {
		c.Form.DefaultSack = c.Form.SackMin
	}
	if c.Form.AreaStep == 0 {
		c.Form.AreaStep = 0.1
	}
	if c.Display.Locale == "" {
		c.Display.Locale = "en"
	}
	if c.Display.Currency == "" {
		c.Display.Currency = "INR"
	}
	if c.Display.CurrencySymbol == "" && c.Display.Currency == "INR" {
		c.Display.CurrencySymbol = "₹"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CROPYIELD_MODEL_PATH"); v != "" {
		if c.Model.ModelID == filepath.Base(c.Model.Path) {
			c.Model.ModelID = ""
		}
		c.Model.Path = v
	}
	if v := os.Getenv("CROPYIELD_MODEL_KIND"); v != "" {
		c.Model.Kind = ModelKind(strings.ToLower(v))
	}
	if v := os.Getenv("ORT_LIBRARY_PATH"); v != "" {
		c.Model.OrtLibrary = v
	}
	if v := os.Getenv("CROPYIELD_BACKGROUND"); v != "" {
		c.BackgroundPath = v
	}
	if v := os.Getenv("CROPYIELD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate reports settings that would make the form or the model unusable.
func (c Config) Validate() error {
	switch c.Model.Kind {
	case ModelONNX, ModelLinear:
	default:
		return fmt.Errorf("%w: unknown model kind %q", ErrInvalidConfig, c.Model.Kind)
	}
	if strings.TrimSpace(c.Model.Path) == "" {
		return fmt.Errorf("%w: model path is required", ErrInvalidConfig)
	}
	if err := c.Form.validate(); err != nil {
		return err
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.Display.Locale, err)
	}
	if _, err := currency.ParseISO(c.Display.Currency); err != nil {
		return fmt.Errorf("%w: currency %q: %v", ErrInvalidConfig, c.Display.Currency, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (f FormConfig) validate() error {
	if f.YearMin > f.YearMax {
		return fmt.Errorf("%w: yearMin %d > yearMax %d", ErrInvalidConfig, f.YearMin, f.YearMax)
	}
	if f.DefaultYear < f.YearMin || f.DefaultYear > f.YearMax {
		return fmt.Errorf("%w: defaultYear %d outside [%d,%d]", ErrInvalidConfig, f.DefaultYear, f.YearMin, f.YearMax)
	}
	if f.DefaultMSP < 0 {
		return fmt.Errorf("%w: defaultMsp must not be negative", ErrInvalidConfig)
	}
	if f.SackStep <= 0 || f.SackMin <= 0 {
		return fmt.Errorf("%w: sackMin and sackStep must be positive", ErrInvalidConfig)
	}
	if f.SackMin > f.SackMax {
		return fmt.Errorf("%w: sackMin %d > sackMax %d", ErrInvalidConfig, f.SackMin, f.SackMax)
	}
	if !f.sackAllowed(f.DefaultSack) {
		return fmt.Errorf("%w: defaultSack %d is not one of %v", ErrInvalidConfig, f.DefaultSack, f.SackSizes())
	}
	if f.AreaStep <= 0 {
		return fmt.Errorf("%w: areaStep must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads configuration from the given path or the default config.yaml.
// A missing file yields defaults. Environment overrides are applied last.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	cfg := seededConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}
	cfg.applyEnvOverrides()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
