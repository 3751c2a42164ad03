package usecase

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgNameTooShort   = "Le nom doit contenir au moins 2 caractères"
	MsgNameTooLong    = "Le nom ne doit pas dépasser 100 caractères"
	MsgInvalidEmail   = "Email invalide"
	MsgInvalidPhone   = "Numéro de téléphone invalide"
	MsgPlanRequired   = "Plan requis"
	MsgPlanNameNeeded = "Nom du plan requis"
	MsgInvalidPrice   = "Prix du plan invalide"
	MsgInvalidData    = "Données invalides"

	// GenericSubmissionError aparece para toda falha que não é de validação.
	GenericSubmissionError = "Une erreur est survenue lors de l'envoi de votre demande. Veuillez réessayer."

	MsgNewsletterInvalidEmail = "Please provide a valid email address."
)

var validate = validator.New()

// ValidateSubmitSubscriptionInput checa as regras na ordem dos campos e reporta só a
// primeira falha. O nome passa por trim antes de ser medido.
func ValidateSubmitSubscriptionInput(input SubmitSubscriptionInput) *ValidationError {
	input.Name = strings.TrimSpace(input.Name)

	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "input", Message: MsgInvalidData}
	}

	first := fieldErrs[0]
	return &ValidationError{Field: jsonField(first), Message: subscriptionMessage(first)}
}

func subscriptionMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Name":
		if fe.Tag() == "max" {
			return MsgNameTooLong
		}
		return MsgNameTooShort
	case "Email":
		return MsgInvalidEmail
	case "Phone":
		return MsgInvalidPhone
	case "PlanID":
		return MsgPlanRequired
	case "PlanName":
		return MsgPlanNameNeeded
	case "PlanPrice", "Amount":
		return MsgInvalidPrice
	default:
		return MsgInvalidData
	}
}

func jsonField(fe validator.FieldError) string {
	switch fe.StructField() {
	case "PlanID":
		return "planId"
	case "PlanName":
		return "planName"
	case "PlanPrice":
		return "planPrice"
	case "Amount":
		return "planPrice.amount"
	default:
		return strings.ToLower(fe.StructField())
	}
}

func ValidateSubscribeNewsletterInput(input SubscribeNewsletterInput) *ValidationError {
	input.Email = strings.TrimSpace(input.Email)
	if err := validate.Struct(input); err != nil {
		return &ValidationError{Field: "email", Message: MsgNewsletterInvalidEmail}
	}
	return nil
}
