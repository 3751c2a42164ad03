package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

// LeadRepository arquiva os leads no Postgres. Insert simples: envios
// idênticos geram linhas distintas.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const insertLeadQuery = `
		INSERT INTO subscription_requests (
			id, name, email, phone, plan_id, plan_kind, selected_plan_id,
			plan_name, plan_amount, plan_currency, plan_period, status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, status, submitted_at
	`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.SubscriptionLead) (*entity.SubscriptionLead, error) {
	var selectedPlan *string
	if ref, ok := lead.SelectedPlanRef(); ok {
		selectedPlan = nullString(ref)
	}

	created := *lead
	var status string
	err := r.DB.QueryRowContext(
		ctx,
		insertLeadQuery,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Plan.ID,
		string(lead.Plan.Kind),
		selectedPlan,
		lead.PlanName,
		lead.PlanPrice.Amount,
		string(lead.PlanPrice.Currency),
		string(lead.PlanPrice.Period),
		string(lead.Status),
		lead.SubmittedAt,
	).Scan(
		&created.ID,
		&status,
		&created.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert subscription request: %w", err)
	}

	created.Status = entity.LeadStatus(status)
	return &created, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
