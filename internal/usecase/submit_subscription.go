package usecase

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xavierca1/streamtv-site/internal/entity"
	"github.com/xavierca1/streamtv-site/internal/infra/integration/whatsapp"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

var tracer = otel.Tracer("github.com/xavierca1/streamtv-site/internal/usecase")

type SubmitSubscriptionUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Settings SiteSettingsReader
	Numbers  WhatsAppNumberSource
	Logger   *logging.Logger
	Clock    func() time.Time
}

func NewSubmitSubscriptionUseCase(
	repo entity.LeadRepositoryInterface,
	settings SiteSettingsReader,
	numbers WhatsAppNumberSource,
	logger *logging.Logger,
) *SubmitSubscriptionUseCase {
	return &SubmitSubscriptionUseCase{
		Repo:     repo,
		Settings: settings,
		Numbers:  numbers,
		Logger:   logger,
		Clock:    time.Now,
	}
}

// Execute nunca retorna erro: toda falha vira o output.
func (uc *SubmitSubscriptionUseCase) Execute(ctx context.Context, input SubmitSubscriptionInput) (out SubmitSubscriptionOutput) {
	ctx, span := tracer.Start(ctx, "SubmitSubscription")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			uc.Logger.Error("subscription pipeline panicked", "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			out = SubmitSubscriptionOutput{Success: false, Error: GenericSubmissionError, Outcome: OutcomeStoreError}
		}
	}()

	url, err := uc.submit(ctx, input)
	if err != nil {
		if vErr, ok := AsValidationError(err); ok {
			uc.Logger.Info("subscription rejected", "field", vErr.Field, "reason", vErr.Message)
			span.SetAttributes(attribute.String("lead.outcome", string(OutcomeInvalid)))
			return SubmitSubscriptionOutput{Success: false, Error: vErr.Message, Outcome: OutcomeInvalid}
		}

		status := "unexpected failure"
		if IsStoreError(err) {
			status = "store failure"
		}
		uc.Logger.Error("subscription submission failed", "error", err, "kind", status)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		span.SetAttributes(attribute.String("lead.outcome", string(OutcomeStoreError)))
		return SubmitSubscriptionOutput{Success: false, Error: GenericSubmissionError, Outcome: OutcomeStoreError}
	}

	span.SetAttributes(attribute.String("lead.outcome", string(OutcomeSuccess)))
	return SubmitSubscriptionOutput{Success: true, WhatsAppURL: url, Outcome: OutcomeSuccess}
}

func (uc *SubmitSubscriptionUseCase) submit(ctx context.Context, input SubmitSubscriptionInput) (string, error) {
	// 1. Valida a entrada (primeira regra que falhar)
	if vErr := ValidateSubmitSubscriptionInput(input); vErr != nil {
		return "", vErr
	}

	// 2. Monta o lead (plano do CMS ou de fallback)
	plan := entity.ParsePlanSelection(input.PlanID)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("plan.kind", string(plan.Kind)))

	lead := entity.NewSubscriptionLead(
		input.Name,
		input.Email,
		input.Phone,
		plan,
		input.PlanName,
		input.PlanPrice.toEntity(),
		uc.now(),
	)

	// 3. Persiste o lead
	created, err := uc.Repo.Create(ctx, lead)
	if err != nil {
		return "", &StoreError{Op: "create subscription lead", Err: err}
	}
	if created == nil {
		return "", &StoreError{Op: "create subscription lead", Err: ErrEmptyStoreResult}
	}
	uc.Logger.Info("subscription lead created", "lead_id", created.ID, "plan_kind", string(plan.Kind))

	// 4. Monta a mensagem do WhatsApp
	message := BuildWhatsAppMessage(lead, FormatPrice(lead.PlanPrice))

	// 5. Resolve o número de destino e gera o link
	settings, err := uc.Settings.GetSiteSettings(ctx)
	if err != nil {
		return "", &StoreError{Op: "fetch site settings", Err: err}
	}

	number := whatsapp.ResolveNumber(settings.ContactPhone(), uc.envNumber())
	return whatsapp.ClickToChatURL(number, message), nil
}

func (uc *SubmitSubscriptionUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now()
	}
	return uc.Clock()
}

func (uc *SubmitSubscriptionUseCase) envNumber() string {
	if uc.Numbers == nil {
		return ""
	}
	return uc.Numbers.WhatsAppBusinessNumber()
}
