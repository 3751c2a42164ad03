package sanity

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

const (
	subscriptionRequestType = "subscriptionRequest"
	isoMillis               = "2006-01-02T15:04:05.000Z07:00"
)

// LeadRepository grava os leads como documentos subscriptionRequest.
type LeadRepository struct {
	Client *Client
}

func NewLeadRepository(client *Client) *LeadRepository {
	return &LeadRepository{Client: client}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.SubscriptionLead) (*entity.SubscriptionLead, error) {
	doc, err := r.Client.Create(ctx, leadDocument(lead))
	if err != nil {
		return nil, fmt.Errorf("create subscription request: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	created := *lead
	if id, ok := doc["_id"].(string); ok && id != "" {
		created.ID = id
	}
	return &created, nil
}

func leadDocument(lead *entity.SubscriptionLead) subscriptionRequestDocument {
	doc := subscriptionRequestDocument{
		ID:       lead.ID,
		Type:     subscriptionRequestType,
		Name:     lead.Name,
		Email:    lead.Email,
		Phone:    lead.Phone,
		PlanName: lead.PlanName,
		PlanPrice: planPriceDocument{
			Amount:   lead.PlanPrice.Amount,
			Currency: string(lead.PlanPrice.Currency),
			Period:   string(lead.PlanPrice.Period),
		},
		Status:      string(lead.Status),
		SubmittedAt: lead.SubmittedAt.UTC().Format(isoMillis),
	}
	if ref, ok := lead.SelectedPlanRef(); ok {
		doc.SelectedPlan = &reference{Type: "reference", Ref: ref}
	}
	return doc
}

// NewsletterRepository grava os documentos de newsletter.
type NewsletterRepository struct {
	Client *Client
}

func NewNewsletterRepository(client *Client) *NewsletterRepository {
	return &NewsletterRepository{Client: client}
}

func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error) {
	var doc *newsletterDocument
	if err := r.Client.Fetch(ctx, newsletterByEmailQuery, map[string]any{"email": email}, &doc); err != nil {
		return nil, fmt.Errorf("find newsletter subscriber: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return doc.toEntity(), nil
}

func (r *NewsletterRepository) Create(ctx context.Context, sub *entity.NewsletterSubscriber) (*entity.NewsletterSubscriber, error) {
	doc, err := r.Client.Create(ctx, newsletterDocument{
		ID:           sub.ID,
		Type:         "newsletter",
		Email:        sub.Email,
		Source:       sub.Source,
		IsActive:     sub.IsActive,
		SubscribedAt: sub.SubscribedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create newsletter subscriber: %w", err)
	}
	return decodeSubscriber(doc, sub)
}

func (r *NewsletterRepository) Reactivate(ctx context.Context, id string, at time.Time) (*entity.NewsletterSubscriber, error) {
	doc, err := r.Client.Patch(id).Set(map[string]any{
		"isActive":     true,
		"subscribedAt": at.UTC().Format(isoMillis),
	}).Commit(ctx)
	if err != nil {
		return nil, fmt.Errorf("reactivate newsletter subscriber: %w", err)
	}
	return decodeSubscriber(doc, &entity.NewsletterSubscriber{ID: id, IsActive: true, SubscribedAt: at})
}

// decodeSubscriber usa o valor informado quando o CMS não devolve documento.
func decodeSubscriber(doc Document, fallback *entity.NewsletterSubscriber) (*entity.NewsletterSubscriber, error) {
	if doc == nil {
		return fallback, nil
	}
	var out newsletterDocument
	if err := decode(doc, &out); err != nil {
		return nil, fmt.Errorf("decode newsletter subscriber: %w", err)
	}
	return out.toEntity(), nil
}

func (d *newsletterDocument) toEntity() *entity.NewsletterSubscriber {
	return &entity.NewsletterSubscriber{
		ID:           d.ID,
		Email:        d.Email,
		Source:       d.Source,
		IsActive:     d.IsActive,
		SubscribedAt: d.SubscribedAt,
	}
}
