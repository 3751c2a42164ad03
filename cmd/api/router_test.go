package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/internal/infra/http/handlers"
	"github.com/xavierca1/streamtv-site/internal/infra/http/middleware"
	"github.com/xavierca1/streamtv-site/internal/usecase"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

type stubSubmitter struct{}

func (stubSubmitter) Execute(context.Context, usecase.SubmitSubscriptionInput) usecase.SubmitSubscriptionOutput {
	return usecase.SubmitSubscriptionOutput{Success: true, WhatsAppURL: "https://wa.me/1?text=x", Outcome: usecase.OutcomeSuccess}
}

type stubRevalidator struct{ calls int }

func (s *stubRevalidator) Execute(context.Context, usecase.RevalidateInput) ([]usecase.Action, error) {
	s.calls++
	return nil, nil
}

type stubNewsletter struct{}

func (stubNewsletter) Execute(context.Context, usecase.SubscribeNewsletterInput) usecase.SubscribeNewsletterOutput {
	return usecase.SubscribeNewsletterOutput{Success: true}
}

type stubContent struct{}

func (stubContent) GetSiteSettings(context.Context) (*entity.SiteSettings, error) {
	return &entity.SiteSettings{Title: "StreamTV"}, nil
}
func (stubContent) PricingPlans(context.Context) []entity.PricingPlan { return entity.FallbackPlans() }
func (stubContent) FAQ(context.Context, string) []entity.FAQ          { return []entity.FAQ{} }
func (stubContent) Testimonials(context.Context, bool) []entity.Testimonial {
	return []entity.Testimonial{}
}
func (stubContent) Posts(context.Context, int, int) *entity.PostPage {
	return &entity.PostPage{Posts: []entity.PostPreview{}}
}
func (stubContent) PostBySlug(_ context.Context, slug string) *entity.Post {
	if slug != "hello" {
		return nil
	}
	return &entity.Post{PostPreview: entity.PostPreview{ID: "p", Title: "Hello", Slug: entity.Slug{Current: slug}}}
}
func (stubContent) Home(context.Context) *entity.Home { return &entity.Home{} }

type stubSecrets struct{}

func (stubSecrets) RevalidateSecret() string   { return "s3cret" }
func (stubSecrets) WebhookSecret() string      { return "" }
func (stubSecrets) AllowUnsignedWebhook() bool { return false }

func testRouter(rev *stubRevalidator, burst int) http.Handler {
	logger := logging.Discard()
	return newRouter(routerDeps{
		Logger:      logger,
		CORSOrigins: []string{"http://localhost:3000"},
		Limiter:     middleware.NewRateLimiter(0.001, burst),
		Leads:       handlers.NewLeadHandler(stubSubmitter{}, logger),
		Revalidate:  handlers.NewRevalidateHandler(rev, stubSecrets{}, logger),
		Content:     handlers.NewContentHandler(stubContent{}, logger),
		Newsletter:  handlers.NewNewsletterHandler(stubNewsletter{}),
		Health:      handlers.NewHealthHandler("test", handlers.Dependency{Name: "sanity", Configured: true}),
	})
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.RemoteAddr = "203.0.113.7:5555"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestRouter_Routes(t *testing.T) {
	rev := &stubRevalidator{}
	router := testRouter(rev, 10)

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		wantCode int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"site settings", http.MethodGet, "/api/site-settings", "", http.StatusOK},
		{"pricing", http.MethodGet, "/api/pricing", "", http.StatusOK},
		{"post found", http.MethodGet, "/api/posts/hello", "", http.StatusOK},
		{"post missing", http.MethodGet, "/api/posts/nope", "", http.StatusNotFound},
		{"home", http.MethodGet, "/api/home", "", http.StatusOK},
		{"revalidate query", http.MethodGet, "/api/revalidate?token=s3cret&type=faq", "", http.StatusOK},
		{"revalidate webhook unsigned", http.MethodPost, "/api/revalidate", `{"_type":"faq"}`, http.StatusUnauthorized},
		{"json lead", http.MethodPost, "/api/subscriptions", `{}`, http.StatusOK},
		{"newsletter", http.MethodPost, "/api/newsletter", `{"email":"a@b.co"}`, http.StatusOK},
		{"unknown", http.MethodGet, "/api/nothing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
	assert.Equal(t, 1, rev.calls)
}

func TestRouter_FormPostRedirects(t *testing.T) {
	router := testRouter(&stubRevalidator{}, 10)

	r := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader("name=Amina"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://wa.me/1?text=x", w.Header().Get("Location"))
}

func TestRouter_RateLimitsPublicPosts(t *testing.T) {
	router := testRouter(&stubRevalidator{}, 1)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/api/newsletter", `{"email":"a@b.co"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/api/newsletter", `{"email":"a@b.co"}`).Code)

	// reads are never limited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/pricing", "").Code)
	}
}
