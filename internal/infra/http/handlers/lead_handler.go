package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/streamtv-site/internal/infra/http/middleware"
	"github.com/xavierca1/streamtv-site/internal/usecase"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

const maxFormBytes = 64 << 10

type SubscriptionSubmitter interface {
	Execute(ctx context.Context, input usecase.SubmitSubscriptionInput) usecase.SubmitSubscriptionOutput
}

// LeadHandler expõe o pipeline de assinatura como API JSON e como POST de formulário.
type LeadHandler struct {
	Submitter SubscriptionSubmitter
	Logger    *logging.Logger
}

func NewLeadHandler(submitter SubscriptionSubmitter, logger *logging.Logger) *LeadHandler {
	return &LeadHandler{Submitter: submitter, Logger: logger}
}

// SubmitJSON (POST /api/subscriptions)
func (h *LeadHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	input, err := decodeSubmission(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		h.Logger.Info("rejecting malformed subscription payload", "error", err)
		middleware.RecordLeadSubmission(string(usecase.OutcomeInvalid))
		writeJSON(w, http.StatusBadRequest, usecase.SubmitSubscriptionOutput{Success: false, Error: usecase.MsgInvalidData})
		return
	}

	out := h.Submitter.Execute(r.Context(), input)
	middleware.RecordLeadSubmission(string(out.Outcome))

	writeJSON(w, statusFor(out), out)
}

// SubmitForm (POST /subscribe) redireciona o navegador direto para o WhatsApp.
func (h *LeadHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		middleware.RecordLeadSubmission(string(usecase.OutcomeInvalid))
		writeJSON(w, http.StatusUnprocessableEntity, usecase.SubmitSubscriptionOutput{Success: false, Error: usecase.MsgInvalidData})
		return
	}

	out := h.Submitter.Execute(r.Context(), formInput(r))
	middleware.RecordLeadSubmission(string(out.Outcome))

	if !out.Success {
		writeJSON(w, http.StatusUnprocessableEntity, out)
		return
	}
	http.Redirect(w, r, out.WhatsAppURL, http.StatusSeeOther)
}

// formInput aceita tanto "planPrice.amount" quanto "amount".
func formInput(r *http.Request) usecase.SubmitSubscriptionInput {
	field := func(names ...string) string {
		for _, name := range names {
			if v := r.PostForm.Get(name); v != "" {
				return v
			}
		}
		return ""
	}

	input := usecase.SubmitSubscriptionInput{
		Name:     field("name"),
		Email:    field("email"),
		Phone:    field("phone"),
		PlanID:   field("planId"),
		PlanName: field("planName"),
	}

	rawAmount := field("planPrice.amount", "amount")
	currency := field("planPrice.currency", "currency")
	period := field("planPrice.period", "period")
	if rawAmount == "" && currency == "" && period == "" {
		return input
	}

	price := &usecase.PlanPriceInput{Currency: currency, Period: period}
	if amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64); err == nil {
		price.Amount = &amount
	}
	input.PlanPrice = price
	return input
}

// submissionPayload decodifica cada campo sem tipo fixo: um valor com tipo JSON
// errado chega ao validador como ausente e falha na ordem das regras.
type submissionPayload struct {
	Name      any `json:"name"`
	Email     any `json:"email"`
	Phone     any `json:"phone"`
	PlanID    any `json:"planId"`
	PlanName  any `json:"planName"`
	PlanPrice any `json:"planPrice"`
}

// decodeSubmission só falha com JSON ilegível ou corpo que não é objeto.
func decodeSubmission(body io.Reader) (usecase.SubmitSubscriptionInput, error) {
	var payload submissionPayload
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return usecase.SubmitSubscriptionInput{}, err
	}

	input := usecase.SubmitSubscriptionInput{
		Name:     jsonString(payload.Name),
		Email:    jsonString(payload.Email),
		Phone:    jsonString(payload.Phone),
		PlanID:   jsonString(payload.PlanID),
		PlanName: jsonString(payload.PlanName),
	}

	price, ok := payload.PlanPrice.(map[string]any)
	if !ok {
		return input, nil
	}
	input.PlanPrice = &usecase.PlanPriceInput{
		Currency: jsonString(price["currency"]),
		Period:   jsonString(price["period"]),
	}
	if amount, ok := price["amount"].(float64); ok {
		input.PlanPrice.Amount = &amount
	}
	return input, nil
}

func jsonString(v any) string {
	s, _ := v.(string)
	return s
}

func statusFor(out usecase.SubmitSubscriptionOutput) int {
	switch out.Outcome {
	case usecase.OutcomeSuccess:
		return http.StatusOK
	case usecase.OutcomeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
