package usecase

import "github.com/xavierca1/streamtv-site/internal/entity"

type PlanPriceInput struct {
	Amount   *float64 `json:"amount" validate:"required,gte=0"`
	Currency string   `json:"currency"`
	Period   string   `json:"period"`
}

func (p *PlanPriceInput) toEntity() entity.PlanPrice {
	price := entity.PlanPrice{
		Currency: entity.Currency(p.Currency),
		Period:   entity.Period(p.Period),
	}
	if p.Amount != nil {
		price.Amount = *p.Amount
	}
	return price
}

// SubmitSubscriptionInput é o payload do formulário de assinatura. A ordem dos
// campos é a ordem em que as regras são checadas.
type SubmitSubscriptionInput struct {
	Name      string          `json:"name" validate:"required,min=2,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	Phone     string          `json:"phone" validate:"required,min=8,max=20"`
	PlanID    string          `json:"planId" validate:"required"`
	PlanName  string          `json:"planName" validate:"required"`
	PlanPrice *PlanPriceInput `json:"planPrice" validate:"required"`
}

type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeInvalid    Outcome = "validation_error"
	OutcomeStoreError Outcome = "store_error"
)

type SubmitSubscriptionOutput struct {
	Success     bool    `json:"success"`
	Error       string  `json:"error,omitempty"`
	WhatsAppURL string  `json:"whatsappUrl,omitempty"`
	Outcome     Outcome `json:"-"`
}

type RevalidateMode string

const (
	// RevalidateModeQuery é a entrada com token na query (aceita também o tipo "all").
	RevalidateModeQuery   RevalidateMode = "query"
	RevalidateModeWebhook RevalidateMode = "webhook"
)

type RevalidateInput struct {
	Type string
	Slug string
	Mode RevalidateMode
}

type SubscribeNewsletterInput struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source"`
}

type SubscribeNewsletterOutput struct {
	Success bool                         `json:"success"`
	Message string                       `json:"message"`
	Data    *entity.NewsletterSubscriber `json:"data,omitempty"`
}
