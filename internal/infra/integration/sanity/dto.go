package sanity

import (
	"encoding/json"
	"time"
)

// Document é um documento bruto do CMS.
type Document map[string]any

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

type mutation struct {
	Create Document `json:"create,omitempty"`
	Patch  *patch   `json:"patch,omitempty"`
}

type patch struct {
	ID  string         `json:"id"`
	Set map[string]any `json:"set,omitempty"`
}

type mutateRequest struct {
	Mutations []mutation `json:"mutations"`
}

type mutateResult struct {
	ID        string   `json:"id"`
	Operation string   `json:"operation"`
	Document  Document `json:"document"`
}

type mutateResponse struct {
	TransactionID string         `json:"transactionId"`
	Results       []mutateResult `json:"results"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

type reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

type planPriceDocument struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}

// subscriptionRequestDocument é o formato do lead no CMS.
type subscriptionRequestDocument struct {
	ID           string            `json:"_id"`
	Type         string            `json:"_type"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	SelectedPlan *reference        `json:"selectedPlan,omitempty"`
	PlanName     string            `json:"planName"`
	PlanPrice    planPriceDocument `json:"planPrice"`
	Status       string            `json:"status"`
	SubmittedAt  string            `json:"submittedAt"`
}

type newsletterDocument struct {
	ID           string    `json:"_id"`
	Type         string    `json:"_type,omitempty"`
	Email        string    `json:"email"`
	Source       string    `json:"source"`
	IsActive     bool      `json:"isActive"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
