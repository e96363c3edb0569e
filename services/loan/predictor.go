// File: services/loan/predictor.go
package loan

import (
	"fmt"
	"math"

	"calbot/models"
)

// Fixed replies shown to the end user via fulfillmentText.
const (
	MsgApproved = "Congratulations! Your loan application has been pre-approved"
	MsgDenied   = "Unfortunately, your loan application was not approved at this time"
	MsgError    = "An error occurred. Please try again."
)

// Predictor runs inference against the loaded artifacts. Output is
// deterministic for identical input and identical artifacts.
type Predictor struct {
	artifacts *Artifacts
}

func NewPredictor(artifacts *Artifacts) *Predictor {
	return &Predictor{artifacts: artifacts}
}

// Predict assembles the application into the trained feature order, applies
// the pre-fitted scaling transform to the numeric subset, and returns the
// binary outcome.
func (p *Predictor) Predict(app models.LoanApplication) (bool, error) {
	values, err := featureValues(app)
	if err != nil {
		return false, err
	}

	scaler := p.artifacts.Scaler
	model := p.artifacts.Model

	z := model.Intercept
	for i, name := range model.Features {
		x := values[name]
		if i < len(numericalFeatures) {
			x = (x - scaler.Mean[i]) / scaler.Scale[i]
		}
		z += model.Coefficients[i] * x
	}
	return sigmoid(z) >= 0.5, nil
}

// Verdict maps the binary outcome to its fixed user-facing string.
func (p *Predictor) Verdict(app models.LoanApplication) (string, error) {
	approved, err := p.Predict(app)
	if err != nil {
		return "", err
	}
	if approved {
		return MsgApproved, nil
	}
	return MsgDenied, nil
}

func featureValues(app models.LoanApplication) (map[string]float64, error) {
	fields := map[string]*float64{
		"income_annum":             app.IncomeAnnum,
		"loan_amount":              app.LoanAmount,
		"loan_term":                app.LoanTerm,
		"cibil_score":              app.CibilScore,
		"residential_assets_value": app.ResidentialAssetsValue,
		"commercial_assets_value":  app.CommercialAssetsValue,
		"no_of_dependents":         app.NoOfDependents,
		"self_employed":            app.SelfEmployed,
	}
	values := make(map[string]float64, len(fields))
	for name, v := range fields {
		if v == nil {
			return nil, fmt.Errorf("loan: missing field %q", name)
		}
		values[name] = *v
	}
	return values, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
