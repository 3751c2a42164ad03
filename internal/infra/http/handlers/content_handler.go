package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

type ContentReader interface {
	GetSiteSettings(ctx context.Context) (*entity.SiteSettings, error)
	PricingPlans(ctx context.Context) []entity.PricingPlan
	FAQ(ctx context.Context, category string) []entity.FAQ
	Testimonials(ctx context.Context, featuredOnly bool) []entity.Testimonial
	Posts(ctx context.Context, page, pageSize int) *entity.PostPage
	PostBySlug(ctx context.Context, slug string) *entity.Post
	Home(ctx context.Context) *entity.Home
}

type ContentHandler struct {
	Content ContentReader
	Logger  *logging.Logger
}

func NewContentHandler(content ContentReader, logger *logging.Logger) *ContentHandler {
	return &ContentHandler{Content: content, Logger: logger}
}

// SiteSettings responde null quando não consegue carregar, igual a documento ausente.
func (h *ContentHandler) SiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Content.GetSiteSettings(r.Context())
	if err != nil {
		h.Logger.Error("site settings fetch failed", "error", err)
		settings = nil
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *ContentHandler) Pricing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Content.PricingPlans(r.Context()))
}

func (h *ContentHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Content.FAQ(r.Context(), r.URL.Query().Get("category")))
}

func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	featured, _ := strconv.ParseBool(r.URL.Query().Get("featured"))
	writeJSON(w, http.StatusOK, h.Content.Testimonials(r.Context(), featured))
}

func (h *ContentHandler) Posts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	writeJSON(w, http.StatusOK, h.Content.Posts(r.Context(), page, pageSize))
}

func (h *ContentHandler) PostBySlug(w http.ResponseWriter, r *http.Request) {
	post := h.Content.PostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if post == nil {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *ContentHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Content.Home(r.Context()))
}
