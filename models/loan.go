package models

// LoanApplication is the flat field set the trained model expects. Pointer
// fields let the boundary tell a missing parameter from a legitimate zero.
type LoanApplication struct {
	IncomeAnnum            *float64 `json:"income_annum"`
	LoanAmount             *float64 `json:"loan_amount"`
	LoanTerm               *float64 `json:"loan_term"`
	CibilScore             *float64 `json:"cibil_score"`
	ResidentialAssetsValue *float64 `json:"residential_assets_value"`
	CommercialAssetsValue  *float64 `json:"commercial_assets_value"`
	NoOfDependents         *float64 `json:"no_of_dependents"`
	SelfEmployed           *float64 `json:"self_employed"`
}

// WebhookQueryResult mirrors the dialog platform's queryResult block.
type WebhookQueryResult struct {
	Parameters LoanApplication `json:"parameters"`
}

// WebhookRequest is the body of POST /predict as delivered by the dialog platform.
type WebhookRequest struct {
	QueryResult WebhookQueryResult `json:"queryResult"`
}

// WebhookResponse carries the reply the dialog platform shows the end user.
type WebhookResponse struct {
	FulfillmentText string `json:"fulfillmentText"`
}
