package cropyield

import (
	"math"
)

// SackSizes lists the selectable sack sizes from SackMin to SackMax in SackStep increments.
func (f FormConfig) SackSizes() []int {
	if f.SackStep <= 0 || f.SackMin > f.SackMax {
		return nil
	}
	sizes := make([]int, 0, (f.SackMax-f.SackMin)/f.SackStep+1)
	for s := f.SackMin; s <= f.SackMax; s += f.SackStep {
		sizes = append(sizes, s)
	}
	return sizes
}

func (f FormConfig) sackAllowed(size int) bool {
	if f.SackStep <= 0 || size < f.SackMin || size > f.SackMax {
		return false
	}
	return (size-f.SackMin)%f.SackStep == 0
}

// ValidateInput applies the form bounds to in. The prediction path itself
// only rejects negative area and MSP; the form narrows that further.
func (f FormConfig) ValidateInput(in Input) error {
	if in.Year < f.YearMin || in.Year > f.YearMax {
		return invalidInputf("year %d outside [%d, %d]", in.Year, f.YearMin, f.YearMax)
	}
	if err := checkNonNegative("irrigated area", in.AreaHectares); err != nil {
		return err
	}
	if err := checkNonNegative("MSP", in.MSP); err != nil {
		return err
	}
	if !f.sackAllowed(in.SackSizeKg) {
		return invalidInputf("sack size %d kg is not one of %v", in.SackSizeKg, f.SackSizes())
	}
	return nil
}

// SelectionValidator applies the form bounds and then the recommendation
// table, so batch rows are held to the same choices the form offers.
func (f FormConfig) SelectionValidator(c *Catalog) func(Input) error {
	return func(in Input) error {
		if err := f.ValidateInput(in); err != nil {
			return err
		}
		return c.CheckSelection(NormalizeLabel(in.SoilType), NormalizeLabel(in.CropType))
	}
}

// DefaultInput returns the form's initial values: first soil, its first crop.
func (f FormConfig) DefaultInput(catalog *Catalog) Input {
	in := Input{
		Year:       f.DefaultYear,
		MSP:        f.DefaultMSP,
		SackSizeKg: f.DefaultSack,
	}
	soils := catalog.SoilTypes()
	if len(soils) > 0 {
		in.SoilType = soils[0]
		if crops, err := catalog.RecommendedCrops(in.SoilType); err == nil && len(crops) > 0 {
			in.CropType = crops[0]
		}
	}
	return in
}

func checkNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidInputf("%s must be a finite number", name)
	}
	if v < 0 {
		return invalidInputf("%s must not be negative, got %g", name, v)
	}
	return nil
}
