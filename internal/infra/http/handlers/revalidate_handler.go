package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xavierca1/streamtv-site/internal/infra/http/middleware"
	"github.com/xavierca1/streamtv-site/internal/usecase"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

type Revalidator interface {
	Execute(ctx context.Context, input usecase.RevalidateInput) ([]usecase.Action, error)
}

// RevalidationSecrets é lido a cada requisição.
type RevalidationSecrets interface {
	RevalidateSecret() string
	WebhookSecret() string
	AllowUnsignedWebhook() bool
}

type RevalidateHandler struct {
	Revalidator Revalidator
	Secrets     RevalidationSecrets
	Logger      *logging.Logger
	Clock       func() time.Time
}

func NewRevalidateHandler(revalidator Revalidator, secrets RevalidationSecrets, logger *logging.Logger) *RevalidateHandler {
	return &RevalidateHandler{
		Revalidator: revalidator,
		Secrets:     secrets,
		Logger:      logger,
		Clock:       time.Now,
	}
}

type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type queryRevalidateResponse struct {
	Revalidated bool    `json:"revalidated"`
	Type        string  `json:"type"`
	Slug        *string `json:"slug"`
	Timestamp   int64   `json:"timestamp"`
}

type webhookRevalidateResponse struct {
	Revalidated bool  `json:"revalidated"`
	Now         int64 `json:"now"`
}

var unauthorized = messageResponse{Message: "Unauthorized"}

// HandleQuery (GET /api/revalidate?token=&type=&slug=)
func (h *RevalidateHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	token := q.Get("token")
	if token == "" {
		token = strings.Replace(r.Header.Get("Authorization"), "Bearer ", "", 1)
	}

	secret := h.Secrets.RevalidateSecret()
	if secret == "" || token == "" || !secretsEqual(token, secret) {
		middleware.RecordRevalidation(q.Get("type"), string(usecase.RevalidateModeQuery), "unauthorized")
		writeJSON(w, http.StatusUnauthorized, unauthorized)
		return
	}

	contentType, slug := q.Get("type"), q.Get("slug")
	if !h.revalidate(w, r, usecase.RevalidateInput{Type: contentType, Slug: slug, Mode: usecase.RevalidateModeQuery}) {
		return
	}

	resp := queryRevalidateResponse{Revalidated: true, Type: contentType, Timestamp: h.Clock().UnixMilli()}
	if resp.Type == "" {
		resp.Type = "default"
	}
	if slug != "" {
		resp.Slug = &slug
	}
	writeJSON(w, http.StatusOK, resp)
}

type webhookBody struct {
	Type string      `json:"_type"`
	Slug webhookSlug `json:"slug"`
}

// webhookSlug aceita string simples ou o objeto de slug do CMS {"current": "..."}.
type webhookSlug string

func (s *webhookSlug) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = webhookSlug(plain)
		return nil
	}

	var obj *struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("slug: %w", err)
	}
	if obj != nil {
		*s = webhookSlug(obj.Current)
	}
	return nil
}

// HandleWebhook (POST /api/revalidate) recebe o JSON do webhook do CMS.
func (h *RevalidateHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.webhookAuthorized(r) {
		middleware.RecordRevalidation("", string(usecase.RevalidateModeWebhook), "unauthorized")
		writeJSON(w, http.StatusUnauthorized, unauthorized)
		return
	}

	var body webhookBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&body); err != nil {
		h.Logger.Error("revalidation webhook payload unreadable", "error", err)
		middleware.RecordRevalidation("", string(usecase.RevalidateModeWebhook), "error")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error revalidating", Error: err.Error()})
		return
	}

	input := usecase.RevalidateInput{Type: body.Type, Slug: string(body.Slug), Mode: usecase.RevalidateModeWebhook}
	if !h.revalidate(w, r, input) {
		return
	}
	writeJSON(w, http.StatusOK, webhookRevalidateResponse{Revalidated: true, Now: h.Clock().UnixMilli()})
}

func (h *RevalidateHandler) webhookAuthorized(r *http.Request) bool {
	secret := h.Secrets.WebhookSecret()
	if secret == "" {
		if h.Secrets.AllowUnsignedWebhook() {
			h.Logger.Warn("accepting unsigned revalidation webhook")
			return true
		}
		return false
	}
	return secretsEqual(r.Header.Get("Authorization"), "Bearer "+secret)
}

func (h *RevalidateHandler) revalidate(w http.ResponseWriter, r *http.Request, input usecase.RevalidateInput) bool {
	if _, err := h.Revalidator.Execute(r.Context(), input); err != nil {
		h.Logger.Error("error revalidating", "type", input.Type, "mode", string(input.Mode), "error", err)
		middleware.RecordRevalidation(input.Type, string(input.Mode), "error")
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Error revalidating", Error: err.Error()})
		return false
	}
	middleware.RecordRevalidation(input.Type, string(input.Mode), "ok")
	return true
}

func secretsEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
