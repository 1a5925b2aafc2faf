package cropyield

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	fieldSoil = "soil type"
	fieldCrop = "crop type"
)

// Recommendation lists the crops suited to one soil type, in display order.
type Recommendation struct {
	Soil  string   `yaml:"soil" json:"soil"`
	Crops []string `yaml:"crops" json:"crops"`
}

// CatalogDef is the serialisable form of the vocabularies and the recommendation table.
type CatalogDef struct {
	SoilTypes       []string         `yaml:"soilTypes" json:"soilTypes"`
	CropTypes       []string         `yaml:"cropTypes" json:"cropTypes"`
	Recommendations []Recommendation `yaml:"recommendations" json:"recommendations"`
}

// DefaultCatalogDef returns the vocabularies the bundled model was trained on.
// Clayey recommends Paddy, which is not in the crop vocabulary; see Catalog.Issues.
func DefaultCatalogDef() CatalogDef {
	return CatalogDef{
		SoilTypes: []string{"Loamy", "Alluvial", "Clayey", "Sandy", "Silty"},
		CropTypes: []string{"Wheat", "Rice", "Bajra", "Sugarcane", "Maize", "Millet", "Barley", "Soybean"},
		Recommendations: []Recommendation{
			{Soil: "Loamy", Crops: []string{"Wheat", "Rice", "Bajra"}},
			{Soil: "Alluvial", Crops: []string{"Wheat", "Rice"}},
			{Soil: "Clayey", Crops: []string{"Sugarcane", "Paddy"}},
			{Soil: "Sandy", Crops: []string{"Maize", "Millet"}},
			{Soil: "Silty", Crops: []string{"Barley", "Soybean"}},
		},
	}
}

// LoadCatalogDef reads a catalog YAML file. An empty path yields the built-in catalog.
func LoadCatalogDef(path string) (CatalogDef, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCatalogDef(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogDef{}, &AssetLoadError{Path: path, Err: err}
	}
	var def CatalogDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return CatalogDef{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return def, nil
}

// CatalogIssue describes a recommendation table entry that cannot be encoded.
type CatalogIssue struct {
	Soil   string
	Crop   string
	Reason string
}

func (i CatalogIssue) String() string {
	if i.Crop == "" {
		return fmt.Sprintf("%s: %s", i.Soil, i.Reason)
	}
	return fmt.Sprintf("%s -> %s: %s", i.Soil, i.Crop, i.Reason)
}

// Catalog holds the fitted soil and crop encoders and the recommendation
// table. It is immutable after NewCatalog and safe to share.
type Catalog struct {
	soils     *LabelEncoder
	crops     *LabelEncoder
	soilOrder []string
	recs      map[string][]string
	issues    []CatalogIssue
}

// NewCatalog normalizes the labels, fits both encoders and indexes the table.
// Entries naming labels outside the vocabularies are kept and reported by Issues.
func NewCatalog(def CatalogDef) (*Catalog, error) {
	soils, err := NewLabelEncoder(fieldSoil, NormalizeLabels(def.SoilTypes))
	if err != nil {
		return nil, err
	}
	crops, err := NewLabelEncoder(fieldCrop, NormalizeLabels(def.CropTypes))
	if err != nil {
		return nil, err
	}
	if len(def.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: empty recommendation table", ErrInvalidCatalog)
	}
	c := &Catalog{
		soils: soils,
		crops: crops,
		recs:  make(map[string][]string, len(def.Recommendations)),
	}
	for _, rec := range def.Recommendations {
		soil := NormalizeLabel(rec.Soil)
		if soil == "" {
			return nil, fmt.Errorf("%w: recommendation without soil type", ErrInvalidCatalog)
		}
		if _, dup := c.recs[soil]; dup {
			return nil, fmt.Errorf("%w: duplicate recommendation for %q", ErrInvalidCatalog, soil)
		}
		if !soils.Contains(soil) {
			c.issues = append(c.issues, CatalogIssue{Soil: soil, Reason: "soil type not in vocabulary"})
		}
		cropsFor := NormalizeLabels(rec.Crops)
		if len(cropsFor) == 0 {
			c.issues = append(c.issues, CatalogIssue{Soil: soil, Reason: "no recommended crops"})
		}
		for _, crop := range cropsFor {
			if !crops.Contains(crop) {
				c.issues = append(c.issues, CatalogIssue{Soil: soil, Crop: crop, Reason: "crop type not in vocabulary"})
			}
		}
		c.soilOrder = append(c.soilOrder, soil)
		c.recs[soil] = cropsFor
	}
	return c, nil
}

// DefaultCatalog builds the catalog from DefaultCatalogDef.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultCatalogDef())
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// SoilTypes returns the selectable soil types in table order.
func (c *Catalog) SoilTypes() []string {
	return cloneStrings(c.soilOrder)
}

// RecommendedCrops returns the crops offered for soil.
func (c *Catalog) RecommendedCrops(soil string) ([]string, error) {
	crops, ok := c.recs[soil]
	if !ok {
		return nil, &UnknownLabelError{Field: fieldSoil, Label: soil}
	}
	return cloneStrings(crops), nil
}

// CheckSelection rejects a soil/crop pair the form would never offer.
func (c *Catalog) CheckSelection(soil, crop string) error {
	crops, err := c.RecommendedCrops(soil)
	if err != nil {
		return err
	}
	for _, candidate := range crops {
		if candidate == crop {
			return nil
		}
	}
	return invalidInputf("%s %q is not recommended for %s %q (choose one of %s)",
		fieldCrop, crop, fieldSoil, soil, strings.Join(crops, ", "))
}

// EncodeSoil returns the model code for a soil type.
func (c *Catalog) EncodeSoil(soil string) (int, error) {
	return c.soils.Encode(soil)
}

// EncodeCrop returns the model code for a crop type.
func (c *Catalog) EncodeCrop(crop string) (int, error) {
	return c.crops.Encode(crop)
}

// SoilEncoder exposes the fitted soil encoder.
func (c *Catalog) SoilEncoder() *LabelEncoder {
	return c.soils
}

// CropEncoder exposes the fitted crop encoder.
func (c *Catalog) CropEncoder() *LabelEncoder {
	return c.crops
}

// Issues lists table entries that reference labels outside the vocabularies.
func (c *Catalog) Issues() []CatalogIssue {
	if len(c.issues) == 0 {
		return nil
	}
	out := make([]CatalogIssue, len(c.issues))
	copy(out, c.issues)
	return out
}

// Strict returns an error listing every issue, or nil when there are none.
func (c *Catalog) Strict() error {
	if len(c.issues) == 0 {
		return nil
	}
	errs := make([]error, 0, len(c.issues))
	for _, issue := range c.issues {
		errs = append(errs, errors.New(issue.String()))
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}
