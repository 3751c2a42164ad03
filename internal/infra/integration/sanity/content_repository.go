package sanity

import (
	"context"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

// ContentRepository lê o conteúdo público do site.
type ContentRepository struct {
	Client *Client
}

func NewContentRepository(client *Client) *ContentRepository {
	return &ContentRepository{Client: client}
}

// SiteSettings retorna nil sem erro quando não há documento de configurações.
func (r *ContentRepository) SiteSettings(ctx context.Context) (*entity.SiteSettings, error) {
	var settings *entity.SiteSettings
	if err := r.Client.Fetch(ctx, siteSettingsQuery, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *ContentRepository) PricingPlans(ctx context.Context) ([]entity.PricingPlan, error) {
	var plans []entity.PricingPlan
	if err := r.Client.Fetch(ctx, pricingPlansQuery, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *ContentRepository) FAQ(ctx context.Context, category string) ([]entity.FAQ, error) {
	query, params := faqQuery, map[string]any(nil)
	if category != "" {
		query, params = faqByCategoryQuery, map[string]any{"category": category}
	}

	var faqs []entity.FAQ
	if err := r.Client.Fetch(ctx, query, params, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *ContentRepository) Testimonials(ctx context.Context, featuredOnly bool) ([]entity.Testimonial, error) {
	query := testimonialsQuery
	if featuredOnly {
		query = featuredTestimonialsQuery
	}

	var items []entity.Testimonial
	if err := r.Client.Fetch(ctx, query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContentRepository) RecentPosts(ctx context.Context, limit int) ([]entity.PostPreview, error) {
	var posts []entity.PostPreview
	if err := r.Client.Fetch(ctx, recentPostsQuery, map[string]any{"limit": limit}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *ContentRepository) Posts(ctx context.Context, page, pageSize int) (*entity.PostPage, error) {
	start := (page - 1) * pageSize
	params := map[string]any{"start": start, "end": start + pageSize}

	var result entity.PostPage
	if err := r.Client.Fetch(ctx, postsPaginatedQuery, params, &result); err != nil {
		return nil, err
	}
	result.TotalPages = (result.Total + pageSize - 1) / pageSize
	return &result, nil
}

// PostBySlug retorna nil sem erro quando o slug não existe.
func (r *ContentRepository) PostBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	var post *entity.Post
	if err := r.Client.Fetch(ctx, postBySlugQuery, map[string]any{"slug": slug}, &post); err != nil {
		return nil, err
	}
	return post, nil
}
