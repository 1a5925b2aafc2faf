package cropyield

// ColumnCandidates defines possible header names for auto-detecting batch columns.
type ColumnCandidates struct {
	Soil []string `yaml:"soil"`
	Crop []string `yaml:"crop"`
	Year []string `yaml:"year"`
	Area []string `yaml:"area"`
	MSP  []string `yaml:"msp"`
	Sack []string `yaml:"sack"`
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Soil: []string{"soil", "soil_type", "soil type", "soiltype"},
		Crop: []string{"crop", "crop_type", "crop type", "croptype"},
		Year: []string{"year", "crop_year", "season_year"},
		Area: []string{"area", "area_ha", "hectares", "irrigated_area", "irrigation_area", "irrigated area"},
		MSP:  []string{"msp", "msp_per_kg", "price", "minimum_support_price"},
		Sack: []string{"sack", "sack_size", "sack_size_kg", "sack size"},
	}
}

// WithDefaults fills nil fields from DefaultColumnCandidates, so callers
// can override only the parts they need.
func (c ColumnCandidates) WithDefaults() ColumnCandidates {
	defaults := DefaultColumnCandidates()
	return ColumnCandidates{
		Soil: pickStrings(c.Soil, defaults.Soil),
		Crop: pickStrings(c.Crop, defaults.Crop),
		Year: pickStrings(c.Year, defaults.Year),
		Area: pickStrings(c.Area, defaults.Area),
		MSP:  pickStrings(c.MSP, defaults.MSP),
		Sack: pickStrings(c.Sack, defaults.Sack),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}
