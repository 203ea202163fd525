package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/policy"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// residencyEventService is the generic engine behind both the
// temporary-residence and temporary-absence workflows; the two kinds differ
// only in the event's Kind tag and wording of the notification.
type residencyEventService struct {
	txManager    repository.TransactionManager
	residentRepo repository.ResidentRepository
	eventRepo    repository.ResidencyEventRepository
	notifier     usecase.DecisionNotifier
	logger       *slog.Logger
}

// NewResidencyEventService creates a new residency-event service instance.
func NewResidencyEventService(
	txManager repository.TransactionManager,
	residentRepo repository.ResidentRepository,
	eventRepo repository.ResidencyEventRepository,
	notifier usecase.DecisionNotifier,
	logger *slog.Logger,
) usecase.ResidencyEventUsecase {
	return &residencyEventService{
		txManager:    txManager,
		residentRepo: residentRepo,
		eventRepo:    eventRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// Submit validates and persists a new declaration in the pending state.
func (s *residencyEventService) Submit(ctx context.Context, input usecase.SubmitResidencyEventInput) (*entity.ResidencyEvent, error) {
	if !input.Kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown residency event kind")
	}
	if !policy.CanSubmit(input.Actor.Roles, policy.KindResidencyEvent) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Location == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("location is required")
	}

	event := &entity.ResidencyEvent{
		ID:          uuid.New(),
		Kind:        input.Kind,
		ResidentID:  input.ResidentID,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Reason:      input.Reason,
		Note:        input.Note,
		SubmitterID: input.Actor.UserID,
		State:       entity.ResidencyEventPending,
		SubmittedAt: time.Now(),
	}
	if !event.ValidPeriod() {
		return nil, domainerrors.ErrInvalidPeriod
	}

	if _, err := s.residentRepo.FindByID(ctx, input.ResidentID); err != nil {
		if errors.Is(err, repository.ErrResidentNotFound) {
			return nil, domainerrors.ErrResidentNotFound
		}

		return nil, errors.Wrap(err, "failed to find subject resident")
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to create residency event")
	}

	return event, nil
}

// Decide processes a pending declaration. Approval and rejection both end in
// the terminal processed state; the outcome is recorded explicitly. Approval
// deliberately touches no registry record: entering an approved declaration
// into the authoritative temporary-residence book is a separate
// administrative step.
func (s *residencyEventService) Decide(ctx context.Context, input usecase.DecideResidencyEventInput) (*entity.ResidencyEvent, error) {
	if !input.Decision.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("decision must be approve or reject")
	}
	if !policy.CanDecide(input.Actor.Roles, policy.KindResidencyEvent) {
		return nil, domainerrors.ErrForbidden
	}

	event, err := s.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrResidencyEventNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find residency event")
	}
	if event.State != entity.ResidencyEventPending {
		return nil, domainerrors.ErrRequestAlreadyDecided
	}

	outcome := entity.OutcomeApproved
	rejectionReason := ""
	if input.Decision == usecase.DecisionReject {
		outcome = entity.OutcomeRejected
		rejectionReason = input.RejectionReason
	}

	decidedAt := time.Now()
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.NewResidencyEventRepository().MarkProcessed(ctx, event.ID, outcome, rejectionReason, input.Actor.UserID, decidedAt)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotPending) {
			return nil, domainerrors.ErrRequestAlreadyDecided
		}

		return nil, errors.Wrap(err, "residency event decision transaction failed")
	}

	deciderID := input.Actor.UserID
	event.State = entity.ResidencyEventProcessed
	event.Outcome = outcome
	event.RejectionReason = rejectionReason
	event.DeciderID = &deciderID
	event.DecidedAt = &decidedAt

	s.notifier.NotifyDecision(ctx, residencyNotice(event))

	return event, nil
}

// Get retrieves a single declaration, subject to the actor's view scope.
func (s *residencyEventService) Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.ResidencyEvent, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResidencyEventNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find residency event")
	}

	if !policy.CanViewAll(actor.Roles, policy.KindResidencyEvent) && event.SubmitterID != actor.UserID {
		return nil, domainerrors.ErrForbidden
	}

	return event, nil
}

// List retrieves declarations visible to the actor.
func (s *residencyEventService) List(ctx context.Context, input usecase.ListResidencyEventsInput) ([]*entity.ResidencyEvent, error) {
	filter := repository.ListResidencyEventsFilter{
		Kind:   input.Kind,
		State:  input.State,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if !policy.CanViewAll(input.Actor.Roles, policy.KindResidencyEvent) {
		submitterID := input.Actor.UserID
		filter.SubmitterID = &submitterID
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list residency events")
	}

	return events, nil
}

// residencyNotice builds the submitter-facing notice for a processed event.
func residencyNotice(event *entity.ResidencyEvent) usecase.DecisionNotice {
	kindLabel := "Temporary-residence"
	if event.Kind == entity.KindTemporaryAbsence {
		kindLabel = "Temporary-absence"
	}

	outcome := string(event.Outcome)
	message := fmt.Sprintf("%s declaration for %s to %s has been %s.",
		kindLabel,
		event.StartDate.Format("2006-01-02"),
		event.EndDate.Format("2006-01-02"),
		outcome,
	)
	if event.Outcome == entity.OutcomeRejected && event.RejectionReason != "" {
		message += " Reason: " + event.RejectionReason
	}

	var deciderID uuid.UUID
	if event.DeciderID != nil {
		deciderID = *event.DeciderID
	}

	return usecase.DecisionNotice{
		Recipient:   event.SubmitterID,
		Kind:        entity.NotificationResidencyEventDecided,
		Title:       kindLabel + " declaration " + outcome,
		Message:     message,
		Link:        "/residency-events/" + event.ID.String(),
		RequestID:   event.ID,
		RequestKind: string(event.Kind),
		Outcome:     outcome,
		DeciderID:   deciderID,
	}
}
