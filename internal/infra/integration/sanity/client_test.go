package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

// fakeSanity records mutations and answers queries from a fixed table.
type fakeSanity struct {
	t         *testing.T
	results   map[string]any
	mutations []mutation
	status    int
}

func (f *fakeSanity) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"error":{"description":"dataset not found","type":"httpNotFound"}}`))
		return
	}

	switch r.URL.Path {
	case "/v2024-01-01/data/query/production":
		result, ok := f.results[r.URL.Query().Get("query")]
		if !ok {
			result = nil
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": result, "ms": 1})
	case "/v2024-01-01/data/mutate/production":
		assert.Equal(f.t, http.MethodPost, r.Method)
		assert.Equal(f.t, "true", r.URL.Query().Get("returnDocuments"))

		var req mutateRequest
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
		f.mutations = append(f.mutations, req.Mutations...)

		m := req.Mutations[0]
		doc := m.Create
		if m.Patch != nil {
			doc = Document{"_id": m.Patch.ID, "_type": "newsletter", "email": "fan@example.com", "source": "website"}
			for k, v := range m.Patch.Set {
				doc[k] = v
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transactionId": "tx-1",
			"results":       []any{map[string]any{"id": doc["_id"], "operation": "create", "document": doc}},
		})
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, fake *fakeSanity) *Client {
	fake.t = t
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewClient(Config{ProjectID: "abc123", Token: "secret-token", BaseURL: srv.URL})
}

func TestClient_Fetch(t *testing.T) {
	var gotAuth, gotParam string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotParam = r.URL.Query().Get("$slug")
		_, _ = w.Write([]byte(`{"result":{"title":"Hello"},"ms":3}`))
	}))
	defer srv.Close()

	client := NewClient(Config{ProjectID: "abc123", Token: "tok", BaseURL: srv.URL})

	var out struct {
		Title string `json:"title"`
	}
	err := client.Fetch(context.Background(), `*[_type == "post" && slug.current == $slug][0]`, map[string]any{"slug": "hello"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Hello", out.Title)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, `"hello"`, gotParam)
}

func TestClient_FetchNullResult(t *testing.T) {
	client := newTestClient(t, &fakeSanity{})

	var settings *entity.SiteSettings
	require.NoError(t, client.Fetch(context.Background(), siteSettingsQuery, nil, &settings))
	assert.Nil(t, settings)
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, &fakeSanity{status: http.StatusNotFound})

	var out any
	err := client.Fetch(context.Background(), "*", nil, &out)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "dataset not found", apiErr.Description)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(Config{})

	assert.False(t, client.Configured())
	assert.ErrorIs(t, client.Fetch(context.Background(), "*", nil, &struct{}{}), ErrNotConfigured)
	_, err := client.Create(context.Background(), Document{"_type": "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Endpoint(t *testing.T) {
	assert.Equal(t, "https://abc.api.sanity.io/v2024-01-01/data/query/production",
		NewClient(Config{ProjectID: "abc"}).endpoint("query", false))
	assert.Equal(t, "https://abc.apicdn.sanity.io/v2024-01-01/data/query/staging",
		NewClient(Config{ProjectID: "abc", Dataset: "staging", UseCDN: true}).endpoint("query", true))
	assert.Equal(t, "https://abc.api.sanity.io/v2021-10-21/data/mutate/production",
		NewClient(Config{ProjectID: "abc", Token: "t", APIVersion: "v2021-10-21", UseCDN: true}).endpoint("mutate", true))
}

func TestLeadRepository_Create(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 789_000_000, time.UTC)
	price := entity.PlanPrice{Amount: 55, Currency: entity.CurrencyEUR, Period: entity.PeriodYearly}

	t.Run("stored plan carries a reference", func(t *testing.T) {
		fake := &fakeSanity{}
		repo := NewLeadRepository(newTestClient(t, fake))
		lead := entity.NewSubscriptionLead("Amina", "amina@example.com", "+212600000000",
			entity.ParsePlanSelection("plan-premium"), "Premium", price, now)

		created, err := repo.Create(context.Background(), lead)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, lead.ID, created.ID)

		require.Len(t, fake.mutations, 1)
		doc := fake.mutations[0].Create
		assert.Equal(t, "subscriptionRequest", doc["_type"])
		assert.Equal(t, "pending", doc["status"])
		assert.Equal(t, "2026-02-03T04:05:06.789Z", doc["submittedAt"])
		assert.Equal(t, map[string]any{"_type": "reference", "_ref": "plan-premium"}, doc["selectedPlan"])
		assert.Equal(t, map[string]any{"amount": 55.0, "currency": "EUR", "period": "yearly"}, doc["planPrice"])
	})

	t.Run("fallback plan has no reference", func(t *testing.T) {
		fake := &fakeSanity{}
		repo := NewLeadRepository(newTestClient(t, fake))
		lead := entity.NewSubscriptionLead("Amina", "amina@example.com", "+212600000000",
			entity.ParsePlanSelection("streaming-basic"), "Basic", price, now)

		_, err := repo.Create(context.Background(), lead)

		require.NoError(t, err)
		require.Len(t, fake.mutations, 1)
		_, has := fake.mutations[0].Create["selectedPlan"]
		assert.False(t, has)
	})

	t.Run("empty mutation result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"transactionId":"tx","results":[]}`))
		}))
		defer srv.Close()
		repo := NewLeadRepository(NewClient(Config{ProjectID: "p", BaseURL: srv.URL}))

		created, err := repo.Create(context.Background(), &entity.SubscriptionLead{ID: "x"})

		require.NoError(t, err)
		assert.Nil(t, created)
	})
}

func TestContentRepository(t *testing.T) {
	fake := &fakeSanity{results: map[string]any{
		siteSettingsQuery: map[string]any{
			"title":       "StreamTV",
			"contactInfo": map[string]any{"phone": "+212 611 111 111"},
		},
		pricingPlansQuery: []any{
			map[string]any{"_id": "plan-1", "name": "Pro", "price": map[string]any{"amount": 9.99, "currency": "USD", "period": "monthly"}, "isActive": true},
		},
		faqByCategoryQuery:        []any{map[string]any{"_id": "f1", "question": "Q?", "answer": "A", "category": "billing"}},
		featuredTestimonialsQuery: []any{map[string]any{"_id": "t1", "name": "Sara", "content": "Top", "rating": 5, "isFeatured": true}},
		postsPaginatedQuery:       map[string]any{"posts": []any{map[string]any{"_id": "p1", "title": "Hi", "slug": map[string]any{"current": "hi"}}}, "total": 7},
	}}
	repo := NewContentRepository(newTestClient(t, fake))
	ctx := context.Background()

	settings, err := repo.SiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "+212 611 111 111", settings.ContactPhone())

	plans, err := repo.PricingPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 9.99, plans[0].Price.Amount)

	faqs, err := repo.FAQ(ctx, "billing")
	require.NoError(t, err)
	assert.Len(t, faqs, 1)

	testimonials, err := repo.Testimonials(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 5, testimonials[0].Rating)

	page, err := repo.Posts(ctx, 1, 6)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "hi", page.Posts[0].Slug.Current)

	post, err := repo.PostBySlug(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestNewsletterRepository(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSanity{results: map[string]any{}}
	repo := NewNewsletterRepository(newTestClient(t, fake))

	existing, err := repo.FindByEmail(ctx, "fan@example.com")
	require.NoError(t, err)
	assert.Nil(t, existing)

	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, &entity.NewsletterSubscriber{
		ID: "n1", Email: "fan@example.com", Source: "website", IsActive: true, SubscribedAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", created.ID)
	assert.True(t, created.SubscribedAt.Equal(at))

	reactivated, err := repo.Reactivate(ctx, "n1", at)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)

	require.Len(t, fake.mutations, 2)
	require.NotNil(t, fake.mutations[1].Patch)
	assert.Equal(t, "n1", fake.mutations[1].Patch.ID)
	assert.Equal(t, true, fake.mutations[1].Patch.Set["isActive"])
	assert.Equal(t, "2026-05-04T12:00:00.000Z", fake.mutations[1].Patch.Set["subscribedAt"])
}
