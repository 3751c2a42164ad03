package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.SubscriptionLead) (*entity.SubscriptionLead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionLead), args.Error(1)
}

type MockSiteSettingsReader struct {
	mock.Mock
}

func (m *MockSiteSettingsReader) GetSiteSettings(ctx context.Context) (*entity.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SiteSettings), args.Error(1)
}

type staticNumber string

func (n staticNumber) WhatsAppBusinessNumber() string { return string(n) }

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidatePath(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockInvalidator) InvalidateTag(ctx context.Context, tag string) error {
	return m.Called(ctx, tag).Error(0)
}

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) SiteSettings(ctx context.Context) (*entity.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SiteSettings), args.Error(1)
}

func (m *MockContentRepository) PricingPlans(ctx context.Context) ([]entity.PricingPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PricingPlan), args.Error(1)
}

func (m *MockContentRepository) FAQ(ctx context.Context, category string) ([]entity.FAQ, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FAQ), args.Error(1)
}

func (m *MockContentRepository) Testimonials(ctx context.Context, featuredOnly bool) ([]entity.Testimonial, error) {
	args := m.Called(ctx, featuredOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Testimonial), args.Error(1)
}

func (m *MockContentRepository) RecentPosts(ctx context.Context, limit int) ([]entity.PostPreview, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PostPreview), args.Error(1)
}

func (m *MockContentRepository) Posts(ctx context.Context, page, pageSize int) (*entity.PostPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostPage), args.Error(1)
}

func (m *MockContentRepository) PostBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

type MockNewsletterRepository struct {
	mock.Mock
}

func (m *MockNewsletterRepository) FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NewsletterSubscriber), args.Error(1)
}

func (m *MockNewsletterRepository) Create(ctx context.Context, sub *entity.NewsletterSubscriber) (*entity.NewsletterSubscriber, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NewsletterSubscriber), args.Error(1)
}

func (m *MockNewsletterRepository) Reactivate(ctx context.Context, id string, at time.Time) (*entity.NewsletterSubscriber, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NewsletterSubscriber), args.Error(1)
}

// fakePageCache is a minimal tag-aware cache for exercising ContentService.
type fakePageCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	tags        map[string][]string
	epochs      map[string]int64
	versionsErr error
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{entries: map[string][]byte{}, tags: map[string][]string{}, epochs: map[string]int64{}}
}

func (c *fakePageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakePageCache) Versions(_ context.Context, tags []string) (TagVersions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versionsErr != nil {
		return nil, c.versionsErr
	}
	seen := TagVersions{}
	for _, tag := range tags {
		seen[tag] = c.epochs[tag]
	}
	return seen, nil
}

func (c *fakePageCache) Set(_ context.Context, key string, value []byte, tags []string, _ time.Duration, seen TagVersions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		if seen != nil && c.epochs[tag] != seen[tag] {
			return nil
		}
	}
	c.entries[key] = value
	for _, tag := range tags {
		c.tags[tag] = append(c.tags[tag], key)
	}
	return nil
}

func (c *fakePageCache) InvalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epochs[tag]++
	for _, key := range c.tags[tag] {
		delete(c.entries, key)
	}
	delete(c.tags, tag)
	return nil
}

func (c *fakePageCache) InvalidatePath(ctx context.Context, path string) error {
	return c.InvalidateTag(ctx, PathTag(path))
}

func ptr[T any](v T) *T { return &v }

func validInput() SubmitSubscriptionInput {
	return SubmitSubscriptionInput{
		Name:     "Yassine Alaoui",
		Email:    "yassine@example.com",
		Phone:    "+212612345678",
		PlanID:   "plan-premium-123",
		PlanName: "Premium",
		PlanPrice: &PlanPriceInput{
			Amount:   ptr(55.0),
			Currency: "EUR",
			Period:   "yearly",
		},
	}
}
