// File: services/loan/artifacts.go
package loan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Feature order the trained model expects. The numeric subset is scaled;
// the categorical subset is fed through unchanged.
var (
	numericalFeatures = []string{
		"income_annum", "loan_amount", "loan_term", "cibil_score",
		"residential_assets_value", "commercial_assets_value",
	}
	categoricalFeatures = []string{"no_of_dependents", "self_employed"}
)

// ScalerArtifact is the pre-fitted standard scaler exported from training:
// per-feature mean and scale over the numeric subset.
type ScalerArtifact struct {
	Features []string  `json:"features"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

// ModelArtifact is the pre-trained binary classifier exported from training:
// logistic-regression coefficients over the full feature order plus the
// intercept. Training itself is out of scope here.
type ModelArtifact struct {
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Artifacts bundles both artifacts, loaded once at process start.
type Artifacts struct {
	Scaler ScalerArtifact
	Model  ModelArtifact
}

// LoadArtifacts reads scaler.json and model.json from dir and validates
// that their feature orders match what this service assembles.
func LoadArtifacts(dir string) (*Artifacts, error) {
	var a Artifacts
	if err := readJSON(filepath.Join(dir, "scaler.json"), &a.Scaler); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, "model.json"), &a.Model); err != nil {
		return nil, err
	}

	if !slices.Equal(a.Scaler.Features, numericalFeatures) {
		return nil, fmt.Errorf("loan: scaler feature order %v does not match expected %v", a.Scaler.Features, numericalFeatures)
	}
	if len(a.Scaler.Mean) != len(numericalFeatures) || len(a.Scaler.Scale) != len(numericalFeatures) {
		return nil, fmt.Errorf("loan: scaler parameter length mismatch")
	}
	for i, s := range a.Scaler.Scale {
		if s == 0 {
			return nil, fmt.Errorf("loan: scaler has zero scale for feature %q", a.Scaler.Features[i])
		}
	}

	expected := append(append([]string{}, numericalFeatures...), categoricalFeatures...)
	if !slices.Equal(a.Model.Features, expected) {
		return nil, fmt.Errorf("loan: model feature order %v does not match expected %v", a.Model.Features, expected)
	}
	if len(a.Model.Coefficients) != len(expected) {
		return nil, fmt.Errorf("loan: model coefficient length mismatch")
	}
	return &a, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loan: read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("loan: decode artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}
