package usecase

import (
	"strconv"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

const FreeLabel = "GRATUIT"

var currencySymbols = map[entity.Currency]string{
	entity.CurrencyEUR: "€",
	entity.CurrencyUSD: "$",
	entity.CurrencyMAD: "DH",
	entity.CurrencyGBP: "£",
}

var periodLabels = map[entity.Period]string{
	entity.PeriodMonthly:   "mois",
	entity.PeriodQuarterly: "3 mois",
	entity.PeriodYearly:    "an",
	entity.PeriodLifetime:  "à vie",
}

// FormatPrice formata o preço para exibição, ex: "45€/an". Códigos desconhecidos passam crus.
func FormatPrice(price entity.PlanPrice) string {
	if price.Amount == 0 {
		return FreeLabel
	}

	symbol, ok := currencySymbols[price.Currency]
	if !ok {
		symbol = string(price.Currency)
	}
	period, ok := periodLabels[price.Period]
	if !ok {
		period = string(price.Period)
	}

	return formatAmount(price.Amount) + symbol + "/" + period
}

// forma decimal mais curta: 45 -> "45", 9.99 -> "9.99"
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
