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

type joinRequestService struct {
	txManager     repository.TransactionManager
	residentRepo  repository.ResidentRepository
	householdRepo repository.HouseholdRepository
	requestRepo   repository.JoinRequestRepository
	notifier      usecase.DecisionNotifier
	logger        *slog.Logger
}

// NewJoinRequestService creates a new join-request service instance.
func NewJoinRequestService(
	txManager repository.TransactionManager,
	residentRepo repository.ResidentRepository,
	householdRepo repository.HouseholdRepository,
	requestRepo repository.JoinRequestRepository,
	notifier usecase.DecisionNotifier,
	logger *slog.Logger,
) usecase.JoinRequestUsecase {
	return &joinRequestService{
		txManager:     txManager,
		residentRepo:  residentRepo,
		householdRepo: householdRepo,
		requestRepo:   requestRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// Submit validates and persists a new join-household request in the pending state.
func (s *joinRequestService) Submit(ctx context.Context, input usecase.SubmitJoinRequestInput) (*entity.JoinRequest, error) {
	if !policy.CanSubmit(input.Actor.Roles, policy.KindJoinHousehold) {
		return nil, domainerrors.ErrForbidden
	}

	if err := validateApplicant(input.Applicant, input.Relationship); err != nil {
		return nil, err
	}

	household, err := s.householdRepo.FindByID(ctx, input.HouseholdID)
	if err != nil {
		if errors.Is(err, repository.ErrHouseholdNotFound) {
			return nil, domainerrors.ErrHouseholdNotFound
		}

		return nil, errors.Wrap(err, "failed to find target household")
	}

	// A household head may only submit into the household they head;
	// administrators and supervisors bypass the ownership check.
	if !policy.BypassesOwnership(input.Actor.Roles) {
		if input.Actor.ResidentID == nil || *input.Actor.ResidentID != household.HeadID {
			return nil, domainerrors.ErrNotHouseholdHead
		}
	}

	request := &entity.JoinRequest{
		ID:           uuid.New(),
		HouseholdID:  household.ID,
		SubmitterID:  input.Actor.UserID,
		Applicant:    input.Applicant,
		Relationship: input.Relationship,
		Reason:       input.Reason,
		State:        entity.JoinRequestPending,
		SubmittedAt:  time.Now(),
	}

	// A person who is already housed may not be the target of a second join
	// request; an unhoused match is attached speculatively for reuse at
	// approval time.
	existing, err := s.residentRepo.FindByIdentityNumber(ctx, input.Applicant.IdentityNumber)
	if err != nil && !errors.Is(err, repository.ErrResidentNotFound) {
		return nil, errors.Wrap(err, "failed to look up applicant by identity number")
	}
	if existing != nil {
		if existing.IsHoused() {
			return nil, domainerrors.ErrResidentAlreadyHoused.WithDetails(
				fmt.Sprintf("resident %s already belongs to household %s", existing.ID, existing.HouseholdID))
		}
		residentID := existing.ID
		request.ResidentID = &residentID
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, errors.Wrap(err, "failed to create join request")
	}

	return request, nil
}

// Decide approves or rejects a pending join request. All mutations of an
// approval (resident upsert, household member append, request state
// transition) run in one database transaction: a partial failure leaves
// the system as if the decision never happened.
func (s *joinRequestService) Decide(ctx context.Context, input usecase.DecideJoinRequestInput) (*entity.JoinRequest, error) {
	if !input.Decision.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("decision must be approve or reject")
	}
	if !policy.CanDecide(input.Actor.Roles, policy.KindJoinHousehold) {
		return nil, domainerrors.ErrForbidden
	}

	request, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, repository.ErrJoinRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find join request")
	}
	if request.State.IsTerminal() {
		return nil, domainerrors.ErrRequestAlreadyDecided
	}

	decidedAt := time.Now()

	var resolvedID uuid.UUID
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if input.Decision == usecase.DecisionReject {
			return repos.NewJoinRequestRepository().MarkRejected(ctx, request.ID, input.Actor.UserID, input.RejectionNote, decidedAt)
		}

		resident, err := s.resolveResident(ctx, repos, request)
		if err != nil {
			return err
		}
		resolvedID = resident.ID

		member := entity.HouseholdMember{
			ResidentID:   resident.ID,
			Relationship: request.Relationship,
			JoinedAt:     decidedAt,
		}
		if err := repos.NewHouseholdRepository().AppendMember(ctx, request.HouseholdID, member); err != nil {
			return errors.Wrap(err, "failed to append household member")
		}

		// The conditional transition is the linearization point: if a
		// concurrent decision won, this fails and the whole transaction,
		// including the resident and household writes above, rolls back.
		return repos.NewJoinRequestRepository().MarkApproved(ctx, request.ID, input.Actor.UserID, resident.ID, decidedAt)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotPending) {
			return nil, domainerrors.ErrRequestAlreadyDecided
		}

		return nil, errors.Wrap(err, "join request decision transaction failed")
	}

	deciderID := input.Actor.UserID
	request.DeciderID = &deciderID
	request.DecidedAt = &decidedAt
	if input.Decision == usecase.DecisionApprove {
		request.State = entity.JoinRequestApproved
		request.ResidentID = &resolvedID
	} else {
		request.State = entity.JoinRequestRejected
		request.RejectionNote = input.RejectionNote
	}

	s.notifier.NotifyDecision(ctx, decisionNotice(request))

	return request, nil
}

// resolveResident returns the resident the approved request applies to:
// the speculatively attached one, an unhoused match by identity number, or
// a record newly created from the applicant snapshot. An existing resident
// is relinked to the request's household with the declared relationship.
func (s *joinRequestService) resolveResident(ctx context.Context, repos repository.RepositoryFactory, request *entity.JoinRequest) (*entity.Resident, error) {
	residentRepo := repos.NewResidentRepository()

	var resident *entity.Resident
	if request.ResidentID != nil {
		found, err := residentRepo.FindByID(ctx, *request.ResidentID)
		if err != nil && !errors.Is(err, repository.ErrResidentNotFound) {
			return nil, errors.Wrap(err, "failed to load attached resident")
		}
		resident = found
	}
	if resident == nil {
		found, err := residentRepo.FindByIdentityNumber(ctx, request.Applicant.IdentityNumber)
		if err != nil && !errors.Is(err, repository.ErrResidentNotFound) {
			return nil, errors.Wrap(err, "failed to look up resident by identity number")
		}
		resident = found
	}

	if resident == nil {
		resident = entity.NewResidentFromSnapshot(request.Applicant, request.HouseholdID, request.Relationship)
		if err := residentRepo.Create(ctx, resident); err != nil {
			return nil, errors.Wrap(err, "failed to create resident from applicant snapshot")
		}

		return resident, nil
	}

	householdID := request.HouseholdID
	resident.HouseholdID = &householdID
	resident.Relationship = request.Relationship
	resident.Status = entity.ResidentStatusActive
	if err := residentRepo.Update(ctx, resident); err != nil {
		return nil, errors.Wrap(err, "failed to link resident to household")
	}

	return resident, nil
}

// Get retrieves a single request, subject to the actor's view scope.
func (s *joinRequestService) Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.JoinRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJoinRequestNotFound) {
			return nil, domainerrors.ErrRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find join request")
	}

	if !policy.CanViewAll(actor.Roles, policy.KindJoinHousehold) && request.SubmitterID != actor.UserID {
		return nil, domainerrors.ErrForbidden
	}

	return request, nil
}

// List retrieves requests visible to the actor: approvers see all requests,
// other actors only their own submissions.
func (s *joinRequestService) List(ctx context.Context, input usecase.ListJoinRequestsInput) ([]*entity.JoinRequest, error) {
	filter := repository.ListJoinRequestsFilter{
		State:  input.State,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if !policy.CanViewAll(input.Actor.Roles, policy.KindJoinHousehold) {
		submitterID := input.Actor.UserID
		filter.SubmitterID = &submitterID
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list join requests")
	}

	return requests, nil
}

// validateApplicant checks the embedded snapshot before any write happens.
func validateApplicant(snapshot entity.ApplicantSnapshot, relationship entity.Relationship) error {
	if !entity.ValidIdentityNumber(snapshot.IdentityNumber) {
		return domainerrors.ErrValidationFailed.WithDetails("identity number must be exactly 12 digits")
	}
	if snapshot.FullName == "" {
		return domainerrors.ErrValidationFailed.WithDetails("full name is required")
	}
	if snapshot.BirthDate.IsZero() {
		return domainerrors.ErrValidationFailed.WithDetails("birth date is required")
	}
	if !snapshot.Sex.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("sex must be male, female or other")
	}
	if !relationship.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown relationship to head of household")
	}

	return nil
}

// decisionNotice builds the submitter-facing notice for a decided request.
func decisionNotice(request *entity.JoinRequest) usecase.DecisionNotice {
	outcome := "approved"
	message := fmt.Sprintf("The request for %s to join the household has been approved.", request.Applicant.FullName)
	if request.State == entity.JoinRequestRejected {
		outcome = "rejected"
		message = fmt.Sprintf("The request for %s to join the household has been rejected.", request.Applicant.FullName)
		if request.RejectionNote != "" {
			message += " Reason: " + request.RejectionNote
		}
	}

	var deciderID uuid.UUID
	if request.DeciderID != nil {
		deciderID = *request.DeciderID
	}

	return usecase.DecisionNotice{
		Recipient:   request.SubmitterID,
		Kind:        entity.NotificationJoinRequestDecided,
		Title:       "Join-household request " + outcome,
		Message:     message,
		Link:        "/join-requests/" + request.ID.String(),
		RequestID:   request.ID,
		RequestKind: string(policy.KindJoinHousehold),
		Outcome:     outcome,
		DeciderID:   deciderID,
	}
}
