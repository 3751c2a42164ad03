package entity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LeadStatus é o ciclo de vida do pedido no back-office.
// Este serviço só grava "pending". Os outros status vêm dos editores do CMS.
type LeadStatus string

const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusCancelled LeadStatus = "cancelled"
)

// Entidade: SubscriptionLead (pedido de assinatura de um prospect)
type SubscriptionLead struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Plan        PlanSelection `json:"plan"`
	PlanName    string        `json:"planName"`
	PlanPrice   PlanPrice     `json:"planPrice"`
	Status      LeadStatus    `json:"status"`
	SubmittedAt time.Time     `json:"submittedAt"`
}

// NewSubscriptionLead cria um lead pendente. A entrada já deve estar validada.
func NewSubscriptionLead(name, email, phone string, plan PlanSelection, planName string, price PlanPrice, now time.Time) *SubscriptionLead {
	return &SubscriptionLead{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Email:       email,
		Phone:       phone,
		Plan:        plan,
		PlanName:    planName,
		PlanPrice:   price,
		Status:      LeadStatusPending,
		SubmittedAt: now,
	}
}

// SelectedPlanRef retorna o id do plano referenciado, se houver.
// Planos de fallback não existem no CMS, então nunca geram referência.
func (l *SubscriptionLead) SelectedPlanRef() (string, bool) {
	if l.Plan.Kind != PlanKindStored {
		return "", false
	}
	return l.Plan.ID, true
}

// LeadRepositoryInterface persiste leads. Lead nil com erro nil conta como falha de gravação.
type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *SubscriptionLead) (*SubscriptionLead, error)
}
