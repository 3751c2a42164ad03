package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/xavierca1/streamtv-site/pkg/logging"
)

const (
	HomePath = "/"

	TagPosts                = "posts"
	TagTestimonials         = "testimonials"
	TagFAQ                  = "faq"
	TagPricing              = "pricing"
	TagSiteSettings         = "site-settings"
	TagSubscriptionRequests = "subscription-requests"

	ContentTypeAll = "all"
)

// PublicTags são as tags das páginas públicas, na ordem em que "all" invalida.
var PublicTags = []string{TagPosts, TagTestimonials, TagFAQ, TagPricing, TagSiteSettings}

func PostPath(slug string) string {
	return "/posts/" + slug
}

type ActionKind string

const (
	ActionPath ActionKind = "path"
	ActionTag  ActionKind = "tag"
)

type Action struct {
	Kind   ActionKind `json:"kind"`
	Target string     `json:"target"`
}

func pathAction(p string) Action { return Action{Kind: ActionPath, Target: p} }
func tagAction(t string) Action  { return Action{Kind: ActionTag, Target: t} }

// RevalidationPlan mapeia o tipo de conteúdo para o que ele invalida no cache.
// O tipo "all" só vale com allowAll. Sem isso cai no padrão.
func RevalidationPlan(contentType, slug string, allowAll bool) []Action {
	home := pathAction(HomePath)

	switch contentType {
	case "post":
		actions := []Action{home, tagAction(TagPosts)}
		if slug != "" {
			actions = append(actions, pathAction(PostPath(slug)))
		}
		return actions
	case "testimonial":
		return []Action{home, tagAction(TagTestimonials)}
	case "faq":
		return []Action{home, tagAction(TagFAQ)}
	case "pricing":
		return []Action{home, tagAction(TagPricing)}
	case "subscriptionRequest":
		return []Action{tagAction(TagSubscriptionRequests)}
	case "siteSettings":
		return []Action{home, tagAction(TagSiteSettings)}
	case ContentTypeAll:
		if allowAll {
			actions := []Action{home}
			for _, tag := range PublicTags {
				actions = append(actions, tagAction(tag))
			}
			return actions
		}
	}
	return []Action{home}
}

type RevalidateUseCase struct {
	Invalidator Invalidator
	Logger      *logging.Logger
}

func NewRevalidateUseCase(invalidator Invalidator, logger *logging.Logger) *RevalidateUseCase {
	return &RevalidateUseCase{Invalidator: invalidator, Logger: logger}
}

// Execute aplica o plano em sequência e para na primeira ação que falhar.
func (uc *RevalidateUseCase) Execute(ctx context.Context, input RevalidateInput) ([]Action, error) {
	ctx, span := tracer.Start(ctx, "Revalidate")
	defer span.End()
	span.SetAttributes(
		attribute.String("revalidate.type", input.Type),
		attribute.String("revalidate.mode", string(input.Mode)),
	)

	actions := RevalidationPlan(input.Type, input.Slug, input.Mode == RevalidateModeQuery)
	for i, action := range actions {
		var err error
		switch action.Kind {
		case ActionPath:
			err = uc.Invalidator.InvalidatePath(ctx, action.Target)
		case ActionTag:
			err = uc.Invalidator.InvalidateTag(ctx, action.Target)
		}
		if err != nil {
			err = fmt.Errorf("invalidate %s %q: %w", action.Kind, action.Target, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalidation failed")
			return actions[:i], err
		}
	}

	uc.Logger.Info("cache revalidated",
		"type", input.Type,
		"slug", input.Slug,
		"mode", string(input.Mode),
		"actions", len(actions),
	)
	return actions, nil
}
