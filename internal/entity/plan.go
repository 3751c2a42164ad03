package entity

import "strings"

// FallbackPlanPrefix marca os ids de plano do catálogo embutido
// (não vêm do CMS).
const FallbackPlanPrefix = "streaming-"

type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyMAD Currency = "MAD"
	CurrencyGBP Currency = "GBP"
)

type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
	PeriodLifetime  Period = "lifetime"
)

// Value Object: PlanPrice
// Moeda e período são strings abertas: códigos desconhecidos do CMS são
// gravados e exibidos como vieram.
type PlanPrice struct {
	Amount   float64  `json:"amount"`
	Currency Currency `json:"currency"`
	Period   Period   `json:"period"`
}

type PlanKind string

const (
	PlanKindFallback PlanKind = "fallback"
	PlanKindStored   PlanKind = "stored"
)

// PlanSelection identifica o plano escolhido pelo lead.
type PlanSelection struct {
	Kind PlanKind `json:"kind"`
	ID   string   `json:"id"`
}

// ParsePlanSelection é o único lugar que interpreta o prefixo de fallback.
func ParsePlanSelection(planID string) PlanSelection {
	if strings.HasPrefix(planID, FallbackPlanPrefix) {
		return PlanSelection{Kind: PlanKindFallback, ID: planID}
	}
	return PlanSelection{Kind: PlanKindStored, ID: planID}
}

type PlanFeature struct {
	Feature  string `json:"feature"`
	Included bool   `json:"included"`
}

type PlanSpecifications struct {
	Channels string `json:"channels,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Devices  string `json:"devices,omitempty"`
	Support  string `json:"support,omitempty"`
}

// PricingPlan é o plano como aparece na seção de preços.
type PricingPlan struct {
	ID             string             `json:"_id"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Price          PlanPrice          `json:"price"`
	PriceLabel     string             `json:"priceLabel,omitempty"`
	IsPopular      bool               `json:"isPopular"`
	IsActive       bool               `json:"isActive"`
	Order          int                `json:"order"`
	CtaText        string             `json:"ctaText,omitempty"`
	CtaURL         string             `json:"ctaUrl,omitempty"`
	Features       []PlanFeature      `json:"features,omitempty"`
	Specifications PlanSpecifications `json:"specifications,omitempty"`
}

// FallbackPlans é o catálogo servido quando o CMS não tem plano ativo.
func FallbackPlans() []PricingPlan {
	return []PricingPlan{
		{
			ID:          FallbackPlanPrefix + "trial",
			Name:        "Essai Gratuit",
			Description: "Découvrez notre service pendant 24h",
			Price:       PlanPrice{Amount: 0, Currency: CurrencyEUR, Period: PeriodMonthly},
			IsActive:    true,
			Order:       1,
			CtaText:     "Activer l'essai",
			Features: []PlanFeature{
				{Feature: "5000+ chaînes", Included: true},
				{Feature: "Qualité HD", Included: true},
				{Feature: "1 appareil", Included: true},
				{Feature: "Accès 24h", Included: true},
			},
			Specifications: PlanSpecifications{Channels: "5000+", Quality: "HD", Devices: "1", Support: "email"},
		},
		{
			ID:          FallbackPlanPrefix + "basic",
			Name:        "Basic",
			Description: "L'essentiel de la télévision",
			Price:       PlanPrice{Amount: 45, Currency: CurrencyEUR, Period: PeriodYearly},
			IsActive:    true,
			Order:       2,
			CtaText:     "S'abonner",
			Features: []PlanFeature{
				{Feature: "15000+ chaînes", Included: true},
				{Feature: "Qualité 4K", Included: true},
				{Feature: "2 appareils simultanés", Included: true},
				{Feature: "Support 24/7", Included: true},
			},
			Specifications: PlanSpecifications{Channels: "15000+", Quality: "4K", Devices: "2", Support: "email"},
		},
		{
			ID:          FallbackPlanPrefix + "premium",
			Name:        "Premium",
			Description: "Le plus populaire",
			Price:       PlanPrice{Amount: 55, Currency: CurrencyEUR, Period: PeriodYearly},
			IsPopular:   true,
			IsActive:    true,
			Order:       3,
			CtaText:     "S'abonner",
			Features: []PlanFeature{
				{Feature: "25000+ chaînes", Included: true},
				{Feature: "Qualité 4K/8K", Included: true},
				{Feature: "5 appareils simultanés", Included: true},
				{Feature: "VOD illimitée", Included: true},
			},
			Specifications: PlanSpecifications{Channels: "25000+", Quality: "8K", Devices: "5", Support: "24_7"},
		},
		{
			ID:          FallbackPlanPrefix + "ultimate",
			Name:        "Ultimate",
			Description: "L'expérience complète",
			Price:       PlanPrice{Amount: 75, Currency: CurrencyEUR, Period: PeriodYearly},
			IsActive:    true,
			Order:       4,
			CtaText:     "S'abonner",
			Features: []PlanFeature{
				{Feature: "Toutes les chaînes", Included: true},
				{Feature: "Appareils illimités", Included: true},
				{Feature: "Événements sportifs en direct", Included: true},
				{Feature: "Support prioritaire", Included: true},
			},
			Specifications: PlanSpecifications{Channels: "30000+", Quality: "8K", Devices: "unlimited", Support: "24_7"},
		},
	}
}
