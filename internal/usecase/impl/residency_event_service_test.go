package impl

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"commune/internal/domain/entity"
	domainerrors "commune/internal/domain/errors"
	"commune/internal/domain/repository"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type residencyEventFixtures struct {
	service      usecase.ResidencyEventUsecase
	residentRepo *mockResidentRepository
	eventRepo    *mockResidencyEventRepository
	txEvents     *mockResidencyEventRepository
	notifier     *mockDecisionNotifier
}

func createTestResidencyEventService() residencyEventFixtures {
	residentRepo := new(mockResidentRepository)
	eventRepo := new(mockResidencyEventRepository)
	txEvents := new(mockResidencyEventRepository)
	notifier := new(mockDecisionNotifier)

	txManager := passthroughTxManager{factory: stubRepositoryFactory{
		events: txEvents,
	}}

	service := NewResidencyEventService(
		txManager,
		residentRepo,
		eventRepo,
		notifier,
		newDiscardLogger(),
	)

	return residencyEventFixtures{
		service:      service,
		residentRepo: residentRepo,
		eventRepo:    eventRepo,
		txEvents:     txEvents,
		notifier:     notifier,
	}
}

func validEventInput(kind entity.ResidencyEventKind) usecase.SubmitResidencyEventInput {
	return usecase.SubmitResidencyEventInput{
		Actor:      supervisorActor(),
		Kind:       kind,
		ResidentID: uuid.New(),
		Location:   "45 Le Loi, Da Nang",
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		Reason:     "seasonal work",
	}
}

func TestResidencyEventService_Submit_Success(t *testing.T) {
	fx := createTestResidencyEventService()

	ctx := context.Background()
	input := validEventInput(entity.KindTemporaryResidence)

	fx.residentRepo.On("FindByID", ctx, input.ResidentID).
		Return(&entity.Resident{ID: input.ResidentID}, nil)
	fx.eventRepo.On("Create", ctx, mock.AnythingOfType("*entity.ResidencyEvent")).Return(nil)

	event, err := fx.service.Submit(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, entity.ResidencyEventPending, event.State)
	assert.Equal(t, entity.KindTemporaryResidence, event.Kind)
	fx.eventRepo.AssertExpectations(t)
}

func TestResidencyEventService_Submit_RejectsInvertedPeriod(t *testing.T) {
	fx := createTestResidencyEventService()

	input := validEventInput(entity.KindTemporaryAbsence)
	input.StartDate, input.EndDate = input.EndDate, input.StartDate

	_, err := fx.service.Submit(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPeriod))
}

func TestResidencyEventService_Submit_RejectsZeroLengthPeriod(t *testing.T) {
	fx := createTestResidencyEventService()

	input := validEventInput(entity.KindTemporaryAbsence)
	input.EndDate = input.StartDate

	_, err := fx.service.Submit(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPeriod))
}

func TestResidencyEventService_Submit_UnknownResident(t *testing.T) {
	fx := createTestResidencyEventService()

	ctx := context.Background()
	input := validEventInput(entity.KindTemporaryResidence)

	fx.residentRepo.On("FindByID", ctx, input.ResidentID).
		Return(nil, repository.ErrResidentNotFound)

	_, err := fx.service.Submit(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrResidentNotFound))
}

func TestResidencyEventService_Submit_RequiresLocation(t *testing.T) {
	fx := createTestResidencyEventService()

	input := validEventInput(entity.KindTemporaryResidence)
	input.Location = ""

	_, err := fx.service.Submit(context.Background(), input)

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestResidencyEventService_Decide_Approve(t *testing.T) {
	fx := createTestResidencyEventService()

	ctx := context.Background()
	actor := supervisorActor()
	event := &entity.ResidencyEvent{
		ID:          uuid.New(),
		Kind:        entity.KindTemporaryResidence,
		SubmitterID: uuid.New(),
		State:       entity.ResidencyEventPending,
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}

	fx.eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
	fx.txEvents.On("MarkProcessed", ctx, event.ID, entity.OutcomeApproved, "", actor.UserID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.notifier.On("NotifyDecision", ctx, mock.MatchedBy(func(n usecase.DecisionNotice) bool {
		return n.Recipient == event.SubmitterID &&
			n.Outcome == "approved" &&
			n.Kind == entity.NotificationResidencyEventDecided
	})).Return()

	decided, err := fx.service.Decide(ctx, usecase.DecideResidencyEventInput{
		Actor:    actor,
		EventID:  event.ID,
		Decision: usecase.DecisionApprove,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ResidencyEventProcessed, decided.State)
	assert.Equal(t, entity.OutcomeApproved, decided.Outcome)
	fx.notifier.AssertExpectations(t)
}

func TestResidencyEventService_Decide_RejectCarriesReason(t *testing.T) {
	fx := createTestResidencyEventService()

	ctx := context.Background()
	actor := supervisorActor()
	event := &entity.ResidencyEvent{
		ID:          uuid.New(),
		Kind:        entity.KindTemporaryAbsence,
		SubmitterID: uuid.New(),
		State:       entity.ResidencyEventPending,
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}

	fx.eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
	fx.txEvents.On("MarkProcessed", ctx, event.ID, entity.OutcomeRejected, "dates overlap an existing declaration", actor.UserID, mock.AnythingOfType("time.Time")).Return(nil)
	fx.notifier.On("NotifyDecision", ctx, mock.MatchedBy(func(n usecase.DecisionNotice) bool {
		return n.Outcome == "rejected" && strings.Contains(n.Message, "dates overlap")
	})).Return()

	decided, err := fx.service.Decide(ctx, usecase.DecideResidencyEventInput{
		Actor:           actor,
		EventID:         event.ID,
		Decision:        usecase.DecisionReject,
		RejectionReason: "dates overlap an existing declaration",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeRejected, decided.Outcome)
	assert.Equal(t, "dates overlap an existing declaration", decided.RejectionReason)
}

func TestResidencyEventService_Decide_AlreadyProcessed(t *testing.T) {
	fx := createTestResidencyEventService()

	ctx := context.Background()
	event := &entity.ResidencyEvent{
		ID:      uuid.New(),
		State:   entity.ResidencyEventProcessed,
		Outcome: entity.OutcomeApproved,
	}

	fx.eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)

	_, err := fx.service.Decide(ctx, usecase.DecideResidencyEventInput{
		Actor:    supervisorActor(),
		EventID:  event.ID,
		Decision: usecase.DecisionApprove,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrRequestAlreadyDecided))
	fx.notifier.AssertNotCalled(t, "NotifyDecision", mock.Anything, mock.Anything)
}

func TestResidencyEventService_Decide_RaceMapsToConflict(t *testing.T) {
	fx := createTestResidencyEventService()

	ctx := context.Background()
	actor := supervisorActor()
	event := &entity.ResidencyEvent{
		ID:          uuid.New(),
		SubmitterID: uuid.New(),
		State:       entity.ResidencyEventPending,
		StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}

	fx.eventRepo.On("FindByID", ctx, event.ID).Return(event, nil)
	fx.txEvents.On("MarkProcessed", ctx, event.ID, entity.OutcomeApproved, "", actor.UserID, mock.AnythingOfType("time.Time")).
		Return(repository.ErrRequestNotPending)

	_, err := fx.service.Decide(ctx, usecase.DecideResidencyEventInput{
		Actor:    actor,
		EventID:  event.ID,
		Decision: usecase.DecisionApprove,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrRequestAlreadyDecided))
	fx.notifier.AssertNotCalled(t, "NotifyDecision", mock.Anything, mock.Anything)
}

// casEventRepository is an in-memory repository whose MarkProcessed performs
// the same compare-and-set the SQL implementation does with its conditional
// UPDATE. It backs the contended-decision test below.
type casEventRepository struct {
	mu    sync.Mutex
	event *entity.ResidencyEvent
}

func (r *casEventRepository) Create(_ context.Context, event *entity.ResidencyEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.event = event

	return nil
}

func (r *casEventRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.ResidencyEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.event == nil || r.event.ID != id {
		return nil, repository.ErrResidencyEventNotFound
	}
	copied := *r.event

	return &copied, nil
}

func (r *casEventRepository) MarkProcessed(_ context.Context, id uuid.UUID, outcome entity.ResidencyEventOutcome, rejectionReason string, deciderID uuid.UUID, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.event == nil || r.event.ID != id || r.event.State != entity.ResidencyEventPending {
		return repository.ErrRequestNotPending
	}
	r.event.State = entity.ResidencyEventProcessed
	r.event.Outcome = outcome
	r.event.RejectionReason = rejectionReason
	r.event.DeciderID = &deciderID
	r.event.DecidedAt = &decidedAt

	return nil
}

func (r *casEventRepository) List(_ context.Context, _ repository.ListResidencyEventsFilter) ([]*entity.ResidencyEvent, error) {
	return nil, nil
}

// countingNotifier counts fan-out invocations across goroutines.
type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) NotifyDecision(context.Context, usecase.DecisionNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func TestResidencyEventService_Decide_ContendedExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	eventRepo := &casEventRepository{
		event: &entity.ResidencyEvent{
			ID:          uuid.New(),
			Kind:        entity.KindTemporaryResidence,
			SubmitterID: uuid.New(),
			State:       entity.ResidencyEventPending,
			StartDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	notifier := &countingNotifier{}

	service := NewResidencyEventService(
		passthroughTxManager{factory: stubRepositoryFactory{events: eventRepo}},
		new(mockResidentRepository),
		eventRepo,
		notifier,
		newDiscardLogger(),
	)

	const deciders = 16
	eventID := eventRepo.event.ID
	results := make(chan error, deciders)
	var wg sync.WaitGroup
	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Decide(ctx, usecase.DecideResidencyEventInput{
				Actor:    supervisorActor(),
				EventID:  eventID,
				Decision: usecase.DecisionApprove,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domainerrors.ErrRequestAlreadyDecided):
			conflicts++
		default:
			t.Fatalf("unexpected decision error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, deciders-1, conflicts)
	assert.Equal(t, 1, notifier.count)
	assert.Equal(t, entity.ResidencyEventProcessed, eventRepo.event.State)
}
