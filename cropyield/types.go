package cropyield

// FeatureCount is the width of the vector the model expects.
const FeatureCount = 4

// FeatureVector is the model input in its fixed order
// (year, irrigated area in hectares, soil code, crop code).
type FeatureVector struct {
	Year         int     `json:"year"`
	AreaHectares float64 `json:"areaHectares"`
	SoilCode     int     `json:"soilCode"`
	CropCode     int     `json:"cropCode"`
}

// Values returns the vector in model order.
func (f FeatureVector) Values() []float64 {
	return []float64{float64(f.Year), f.AreaHectares, float64(f.SoilCode), float64(f.CropCode)}
}

// Float32s returns the vector in model order as float32, the tensor element type.
func (f FeatureVector) Float32s() []float32 {
	vals := f.Values()
	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = float32(v)
	}
	return out
}

// Input is one set of form values.
type Input struct {
	SoilType     string  `json:"soilType"`
	CropType     string  `json:"cropType"`
	Year         int     `json:"year"`
	AreaHectares float64 `json:"areaHectares"`
	MSP          float64 `json:"msp"`
	SackSizeKg   int     `json:"sackSizeKg"`
}

// Result is the outcome of one successful prediction.
type Result struct {
	RequestID       string        `json:"requestId"`
	ModelID         string        `json:"modelId"`
	Input           Input         `json:"input"`
	Features        FeatureVector `json:"features"`
	YieldPerHectare float64       `json:"yieldPerHectare"`
	AreaAcres       float64       `json:"areaAcres"`
	Metrics         Metrics       `json:"metrics"`
}
