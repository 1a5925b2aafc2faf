package cropyield

// AcresPerHectare is the conversion factor shown under the area field.
const AcresPerHectare = 2.47

// HectaresToAcres converts an area. Negative input is converted as-is;
// callers reject negative areas before prediction.
func HectaresToAcres(hectares float64) float64 {
	return hectares * AcresPerHectare
}

// Sacks returns how many sacks of sackSizeKg hold totalKg.
func Sacks(totalKg, sackSizeKg float64) (float64, error) {
	if sackSizeKg == 0 {
		return 0, ErrDivisionByZero
	}
	return totalKg / sackSizeKg, nil
}

// Metrics are the quantities derived from one prediction.
type Metrics struct {
	TotalYieldKg float64 `json:"totalYieldKg"`
	TotalSacks   float64 `json:"totalSacks"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// DeriveMetrics scales the per-hectare yield by area and derives sacks and revenue.
func DeriveMetrics(areaHectares, yieldPerHectare, mspPerKg, sackSizeKg float64) (Metrics, error) {
	total := areaHectares * yieldPerHectare
	sacks, err := Sacks(total, sackSizeKg)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		TotalYieldKg: total,
		TotalSacks:   sacks,
		TotalRevenue: total * mspPerKg,
	}, nil
}
