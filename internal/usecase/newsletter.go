package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

const (
	DefaultNewsletterSource = "website"

	MsgNewsletterAlreadySubscribed = "This email is already subscribed to our newsletter."
	MsgNewsletterReactivated       = "Welcome back! Your subscription has been reactivated."
	MsgNewsletterSubscribed        = "Successfully subscribed to our newsletter!"
	MsgNewsletterFailed            = "An error occurred while subscribing. Please try again later."
)

type SubscribeNewsletterUseCase struct {
	Repo   NewsletterRepository
	Logger *logging.Logger
	Clock  func() time.Time
}

func NewSubscribeNewsletterUseCase(repo NewsletterRepository, logger *logging.Logger) *SubscribeNewsletterUseCase {
	return &SubscribeNewsletterUseCase{Repo: repo, Logger: logger, Clock: time.Now}
}

func (uc *SubscribeNewsletterUseCase) Execute(ctx context.Context, input SubscribeNewsletterInput) SubscribeNewsletterOutput {
	// 1. Valida e normaliza o email
	if vErr := ValidateSubscribeNewsletterInput(input); vErr != nil {
		return SubscribeNewsletterOutput{Success: false, Message: vErr.Message}
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// 2. Busca inscrição existente
	existing, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return uc.fail("lookup subscriber", err)
	}

	// 3. Já inscrito: ativo recusa, inativo reativa
	if existing != nil {
		if existing.IsActive {
			return SubscribeNewsletterOutput{Success: false, Message: MsgNewsletterAlreadySubscribed}
		}

		reactivated, err := uc.Repo.Reactivate(ctx, existing.ID, uc.Clock())
		if err != nil {
			return uc.fail("reactivate subscriber", err)
		}
		uc.Logger.Info("newsletter subscription reactivated", "subscriber_id", existing.ID)
		return SubscribeNewsletterOutput{Success: true, Message: MsgNewsletterReactivated, Data: reactivated}
	}

	// 4. Nova inscrição
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = DefaultNewsletterSource
	}

	created, err := uc.Repo.Create(ctx, &entity.NewsletterSubscriber{
		ID:           uuid.NewString(),
		Email:        email,
		Source:       source,
		IsActive:     true,
		SubscribedAt: uc.Clock(),
	})
	if err != nil {
		return uc.fail("create subscriber", err)
	}

	uc.Logger.Info("newsletter subscription created", "source", source)
	return SubscribeNewsletterOutput{Success: true, Message: MsgNewsletterSubscribed, Data: created}
}

func (uc *SubscribeNewsletterUseCase) fail(op string, err error) SubscribeNewsletterOutput {
	uc.Logger.Error("newsletter subscription failed", "op", op, "error", err)
	return SubscribeNewsletterOutput{Success: false, Message: MsgNewsletterFailed}
}
