package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

const (
	DefaultCacheTTL     = time.Hour
	DefaultPostPageSize = 6
	MaxPostPageSize     = 50
	HomeRecentPosts     = 4
)

// PathTag é a tag das entradas renderizadas para um path de página.
func PathTag(path string) string {
	return "path:" + path
}

// ContentService lê o conteúdo do site pelo cache de páginas. Falha de leitura
// nunca vai pro cache, então a próxima leitura tenta o CMS de novo. As versões
// das tags são lidas antes da carga: invalidação no meio descarta o resultado.
type ContentService struct {
	Repo   ContentRepository
	Cache  PageCache
	TTL    time.Duration
	Logger *logging.Logger
}

func NewContentService(repo ContentRepository, cache PageCache, ttl time.Duration, logger *logging.Logger) *ContentService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ContentService{Repo: repo, Cache: cache, TTL: ttl, Logger: logger}
}

func cached[T any](ctx context.Context, s *ContentService, key string, tags []string, load func(context.Context) (T, error)) (T, error) {
	// 1. Tenta o cache
	if raw, ok, err := s.Cache.Get(ctx, key); err != nil {
		s.Logger.Warn("page cache read failed", "key", key, "error", err)
	} else if ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		s.Logger.Warn("discarding undecodable cache entry", "key", key)
	}

	// 2. Lê as versões das tags ANTES de carregar do CMS
	seen, versionErr := s.Cache.Versions(ctx, tags)

	// 3. Carrega do CMS
	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if versionErr != nil {
		s.Logger.Warn("page cache versions unavailable, skipping write", "key", key, "error", versionErr)
		return value, nil
	}

	// 4. Grava no cache, a menos que uma tag tenha sido invalidada no meio
	raw, err := json.Marshal(value)
	if err != nil {
		s.Logger.Warn("page cache encode failed", "key", key, "error", err)
		return value, nil
	}
	if err := s.Cache.Set(ctx, key, raw, tags, s.TTL, seen); err != nil {
		s.Logger.Warn("page cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// GetSiteSettings devolve o erro para quem chamou (o pipeline de leads trata como falha do CMS).
func (s *ContentService) GetSiteSettings(ctx context.Context) (*entity.SiteSettings, error) {
	return cached(ctx, s, "site-settings", []string{TagSiteSettings}, s.Repo.SiteSettings)
}

// PricingPlans serve o catálogo embutido quando o CMS não tem plano ativo ou está fora.
func (s *ContentService) PricingPlans(ctx context.Context) []entity.PricingPlan {
	plans, err := cached(ctx, s, "pricing", []string{TagPricing}, func(ctx context.Context) ([]entity.PricingPlan, error) {
		plans, err := s.Repo.PricingPlans(ctx)
		if err != nil {
			return nil, err
		}
		return withPriceLabels(plans), nil
	})
	if err != nil {
		s.Logger.Error("pricing fetch failed, serving fallback plans", "error", err)
		return withPriceLabels(entity.FallbackPlans())
	}
	if len(plans) == 0 {
		return withPriceLabels(entity.FallbackPlans())
	}
	return plans
}

func withPriceLabels(plans []entity.PricingPlan) []entity.PricingPlan {
	for i := range plans {
		plans[i].PriceLabel = FormatPrice(plans[i].Price)
	}
	return plans
}

func (s *ContentService) FAQ(ctx context.Context, category string) []entity.FAQ {
	key := "faq"
	if category != "" {
		key += ":" + category
	}
	faqs, err := cached(ctx, s, key, []string{TagFAQ}, func(ctx context.Context) ([]entity.FAQ, error) {
		return s.Repo.FAQ(ctx, category)
	})
	if err != nil {
		s.Logger.Error("faq fetch failed", "category", category, "error", err)
		return []entity.FAQ{}
	}
	return nonNil(faqs)
}

func (s *ContentService) Testimonials(ctx context.Context, featuredOnly bool) []entity.Testimonial {
	key := "testimonials"
	if featuredOnly {
		key += ":featured"
	}
	items, err := cached(ctx, s, key, []string{TagTestimonials}, func(ctx context.Context) ([]entity.Testimonial, error) {
		return s.Repo.Testimonials(ctx, featuredOnly)
	})
	if err != nil {
		s.Logger.Error("testimonials fetch failed", "error", err)
		return []entity.Testimonial{}
	}
	return nonNil(items)
}

// Posts limita page a >= 1 e pageSize a [1, MaxPostPageSize].
func (s *ContentService) Posts(ctx context.Context, page, pageSize int) *entity.PostPage {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPostPageSize
	}
	if pageSize > MaxPostPageSize {
		pageSize = MaxPostPageSize
	}

	key := "posts:" + strconv.Itoa(page) + ":" + strconv.Itoa(pageSize)
	result, err := cached(ctx, s, key, []string{TagPosts}, func(ctx context.Context) (*entity.PostPage, error) {
		return s.Repo.Posts(ctx, page, pageSize)
	})
	if err != nil || result == nil {
		if err != nil {
			s.Logger.Error("posts fetch failed", "page", page, "error", err)
		}
		return &entity.PostPage{Posts: []entity.PostPreview{}}
	}
	result.Posts = nonNil(result.Posts)
	return result
}

// PostBySlug retorna nil quando o post não existe ou o CMS falhou.
func (s *ContentService) PostBySlug(ctx context.Context, slug string) *entity.Post {
	post, err := cached(ctx, s, "post:"+slug, []string{TagPosts, PathTag(PostPath(slug))}, func(ctx context.Context) (*entity.Post, error) {
		return s.Repo.PostBySlug(ctx, slug)
	})
	if err != nil {
		s.Logger.Error("post fetch failed", "slug", slug, "error", err)
		return nil
	}
	return post
}

// Home vai pro cache inteira sob o path da home. Montagem com falha parcial é servida mas não cacheada.
func (s *ContentService) Home(ctx context.Context) *entity.Home {
	home, err := cached(ctx, s, "home", []string{PathTag(HomePath)}, s.buildHome)
	if err != nil {
		s.Logger.Warn("home page built with missing sections", "error", err)
	}
	return home
}

func (s *ContentService) buildHome(ctx context.Context) (*entity.Home, error) {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	home := &entity.Home{}

	settings, err := s.Repo.SiteSettings(ctx)
	keep(err)
	home.SiteSettings = settings

	plans, err := s.Repo.PricingPlans(ctx)
	keep(err)
	if len(plans) == 0 {
		plans = entity.FallbackPlans()
	}
	home.Pricing = withPriceLabels(plans)

	faqs, err := s.Repo.FAQ(ctx, "")
	keep(err)
	home.FAQ = nonNil(faqs)

	testimonials, err := s.Repo.Testimonials(ctx, true)
	keep(err)
	home.Testimonials = nonNil(testimonials)

	posts, err := s.Repo.RecentPosts(ctx, HomeRecentPosts)
	keep(err)
	home.RecentPosts = nonNil(posts)

	return home, firstErr
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
