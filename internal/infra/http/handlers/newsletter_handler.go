package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/streamtv-site/internal/usecase"
)

type NewsletterSubscriber interface {
	Execute(ctx context.Context, input usecase.SubscribeNewsletterInput) usecase.SubscribeNewsletterOutput
}

type NewsletterHandler struct {
	Subscriber NewsletterSubscriber
}

func NewNewsletterHandler(subscriber NewsletterSubscriber) *NewsletterHandler {
	return &NewsletterHandler{Subscriber: subscriber}
}

// Subscribe sempre responde 200 com o resultado no corpo, exceto para JSON ilegível.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubscribeNewsletterInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, usecase.SubscribeNewsletterOutput{
			Success: false,
			Message: usecase.MsgNewsletterInvalidEmail,
		})
		return
	}

	writeJSON(w, http.StatusOK, h.Subscriber.Execute(r.Context(), input))
}
