package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/internal/usecase"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Execute(ctx context.Context, input usecase.SubmitSubscriptionInput) usecase.SubmitSubscriptionOutput {
	return m.Called(ctx, input).Get(0).(usecase.SubmitSubscriptionOutput)
}

type MockRevalidator struct {
	mock.Mock
}

func (m *MockRevalidator) Execute(ctx context.Context, input usecase.RevalidateInput) ([]usecase.Action, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.Action), args.Error(1)
}

type MockNewsletter struct {
	mock.Mock
}

func (m *MockNewsletter) Execute(ctx context.Context, input usecase.SubscribeNewsletterInput) usecase.SubscribeNewsletterOutput {
	return m.Called(ctx, input).Get(0).(usecase.SubscribeNewsletterOutput)
}

type MockContent struct {
	mock.Mock
}

func (m *MockContent) GetSiteSettings(ctx context.Context) (*entity.SiteSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SiteSettings), args.Error(1)
}

func (m *MockContent) PricingPlans(ctx context.Context) []entity.PricingPlan {
	return m.Called(ctx).Get(0).([]entity.PricingPlan)
}

func (m *MockContent) FAQ(ctx context.Context, category string) []entity.FAQ {
	return m.Called(ctx, category).Get(0).([]entity.FAQ)
}

func (m *MockContent) Testimonials(ctx context.Context, featuredOnly bool) []entity.Testimonial {
	return m.Called(ctx, featuredOnly).Get(0).([]entity.Testimonial)
}

func (m *MockContent) Posts(ctx context.Context, page, pageSize int) *entity.PostPage {
	return m.Called(ctx, page, pageSize).Get(0).(*entity.PostPage)
}

func (m *MockContent) PostBySlug(ctx context.Context, slug string) *entity.Post {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entity.Post)
}

func (m *MockContent) Home(ctx context.Context) *entity.Home {
	return m.Called(ctx).Get(0).(*entity.Home)
}

type staticSecrets struct {
	revalidate    string
	webhook       string
	allowUnsigned bool
}

func (s staticSecrets) RevalidateSecret() string   { return s.revalidate }
func (s staticSecrets) WebhookSecret() string      { return s.webhook }
func (s staticSecrets) AllowUnsignedWebhook() bool { return s.allowUnsigned }
