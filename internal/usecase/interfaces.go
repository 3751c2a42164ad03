package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

type SiteSettingsReader interface {
	GetSiteSettings(ctx context.Context) (*entity.SiteSettings, error)
}

type WhatsAppNumberSource interface {
	WhatsAppBusinessNumber() string
}

// Invalidator é a API de invalidação do cache de páginas.
type Invalidator interface {
	InvalidatePath(ctx context.Context, path string) error
	InvalidateTag(ctx context.Context, tag string) error
}

// TagVersions mapeia cada tag para o número de invalidações no momento da leitura.
type TagVersions map[string]int64

// PageCache guarda o conteúdo renderizado por chave, ligado às tags que o invalidam.
// Todo InvalidateTag incrementa a versão da tag. Set descarta a gravação quando a
// versão passou da que está em seen: carga que correu junto com invalidação não entra no cache.
type PageCache interface {
	Invalidator
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Versions(ctx context.Context, tags []string) (TagVersions, error)
	Set(ctx context.Context, key string, value []byte, tags []string, ttl time.Duration, seen TagVersions) error
}

type ContentRepository interface {
	SiteSettings(ctx context.Context) (*entity.SiteSettings, error)
	PricingPlans(ctx context.Context) ([]entity.PricingPlan, error)
	FAQ(ctx context.Context, category string) ([]entity.FAQ, error)
	Testimonials(ctx context.Context, featuredOnly bool) ([]entity.Testimonial, error)
	RecentPosts(ctx context.Context, limit int) ([]entity.PostPreview, error)
	Posts(ctx context.Context, page, pageSize int) (*entity.PostPage, error)
	PostBySlug(ctx context.Context, slug string) (*entity.Post, error)
}

// NewsletterRepository retorna (nil, nil) em FindByEmail quando o email não está inscrito.
type NewsletterRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error)
	Create(ctx context.Context, sub *entity.NewsletterSubscriber) (*entity.NewsletterSubscriber, error)
	Reactivate(ctx context.Context, id string, at time.Time) (*entity.NewsletterSubscriber, error)
}
