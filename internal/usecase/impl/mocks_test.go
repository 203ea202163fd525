package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"commune/config"
	"commune/internal/domain/entity"
	"commune/internal/domain/repository"
	"commune/internal/domain/service"
	"commune/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the repository and service boundaries.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Registry: &config.RegistryConfig{
			HouseholdCodePrefix: "HK",
			HouseholdCodeWidth:  5,
		},
	}
}

type mockResidentRepository struct {
	mock.Mock
}

func (m *mockResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error) {
	args := m.Called(ctx, id)
	resident, _ := args.Get(0).(*entity.Resident)

	return resident, args.Error(1)
}

func (m *mockResidentRepository) FindByIdentityNumber(ctx context.Context, identityNumber string) (*entity.Resident, error) {
	args := m.Called(ctx, identityNumber)
	resident, _ := args.Get(0).(*entity.Resident)

	return resident, args.Error(1)
}

func (m *mockResidentRepository) Create(ctx context.Context, resident *entity.Resident) error {
	return m.Called(ctx, resident).Error(0)
}

func (m *mockResidentRepository) Update(ctx context.Context, resident *entity.Resident) error {
	return m.Called(ctx, resident).Error(0)
}

func (m *mockResidentRepository) List(ctx context.Context, filter repository.ListResidentsFilter) ([]*entity.Resident, error) {
	args := m.Called(ctx, filter)
	residents, _ := args.Get(0).([]*entity.Resident)

	return residents, args.Error(1)
}

type mockHouseholdRepository struct {
	mock.Mock
}

func (m *mockHouseholdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error) {
	args := m.Called(ctx, id)
	household, _ := args.Get(0).(*entity.Household)

	return household, args.Error(1)
}

func (m *mockHouseholdRepository) FindByCode(ctx context.Context, code string) (*entity.Household, error) {
	args := m.Called(ctx, code)
	household, _ := args.Get(0).(*entity.Household)

	return household, args.Error(1)
}

func (m *mockHouseholdRepository) Create(ctx context.Context, household *entity.Household) error {
	return m.Called(ctx, household).Error(0)
}

func (m *mockHouseholdRepository) Update(ctx context.Context, household *entity.Household) error {
	return m.Called(ctx, household).Error(0)
}

func (m *mockHouseholdRepository) AppendMember(ctx context.Context, householdID uuid.UUID, member entity.HouseholdMember) error {
	return m.Called(ctx, householdID, member).Error(0)
}

func (m *mockHouseholdRepository) NextCodeSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHouseholdRepository) List(ctx context.Context, filter repository.ListHouseholdsFilter) ([]*entity.Household, error) {
	args := m.Called(ctx, filter)
	households, _ := args.Get(0).([]*entity.Household)

	return households, args.Error(1)
}

type mockJoinRequestRepository struct {
	mock.Mock
}

func (m *mockJoinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *mockJoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	args := m.Called(ctx, id)
	request, _ := args.Get(0).(*entity.JoinRequest)

	return request, args.Error(1)
}

func (m *mockJoinRequestRepository) MarkApproved(ctx context.Context, id uuid.UUID, deciderID, residentID uuid.UUID, decidedAt time.Time) error {
	return m.Called(ctx, id, deciderID, residentID, decidedAt).Error(0)
}

func (m *mockJoinRequestRepository) MarkRejected(ctx context.Context, id uuid.UUID, deciderID uuid.UUID, note string, decidedAt time.Time) error {
	return m.Called(ctx, id, deciderID, note, decidedAt).Error(0)
}

func (m *mockJoinRequestRepository) List(ctx context.Context, filter repository.ListJoinRequestsFilter) ([]*entity.JoinRequest, error) {
	args := m.Called(ctx, filter)
	requests, _ := args.Get(0).([]*entity.JoinRequest)

	return requests, args.Error(1)
}

type mockResidencyEventRepository struct {
	mock.Mock
}

func (m *mockResidencyEventRepository) Create(ctx context.Context, event *entity.ResidencyEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockResidencyEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResidencyEvent, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*entity.ResidencyEvent)

	return event, args.Error(1)
}

func (m *mockResidencyEventRepository) MarkProcessed(ctx context.Context, id uuid.UUID, outcome entity.ResidencyEventOutcome, rejectionReason string, deciderID uuid.UUID, decidedAt time.Time) error {
	return m.Called(ctx, id, outcome, rejectionReason, deciderID, decidedAt).Error(0)
}

func (m *mockResidencyEventRepository) List(ctx context.Context, filter repository.ListResidencyEventsFilter) ([]*entity.ResidencyEvent, error) {
	args := m.Called(ctx, filter)
	events, _ := args.Get(0).([]*entity.ResidencyEvent)

	return events, args.Error(1)
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	notifications, _ := args.Get(0).([]*entity.Notification)

	return notifications, args.Error(1)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *mockFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error) {
	args := m.Called(ctx, id)
	feedback, _ := args.Get(0).(*entity.Feedback)

	return feedback, args.Error(1)
}

func (m *mockFeedbackRepository) Update(ctx context.Context, feedback *entity.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *mockFeedbackRepository) List(ctx context.Context, filter repository.ListFeedbackFilter) ([]*entity.Feedback, error) {
	args := m.Called(ctx, filter)
	entries, _ := args.Get(0).([]*entity.Feedback)

	return entries, args.Error(1)
}

type mockFeeRepository struct {
	mock.Mock
}

func (m *mockFeeRepository) CreateItem(ctx context.Context, item *entity.FeeItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockFeeRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.FeeItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*entity.FeeItem)

	return item, args.Error(1)
}

func (m *mockFeeRepository) UpdateItem(ctx context.Context, item *entity.FeeItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockFeeRepository) ListItems(ctx context.Context, limit, offset int) ([]*entity.FeeItem, error) {
	args := m.Called(ctx, limit, offset)
	items, _ := args.Get(0).([]*entity.FeeItem)

	return items, args.Error(1)
}

func (m *mockFeeRepository) CreateReceipt(ctx context.Context, receipt *entity.FeeReceipt) error {
	return m.Called(ctx, receipt).Error(0)
}

func (m *mockFeeRepository) FindReceiptByID(ctx context.Context, id uuid.UUID) (*entity.FeeReceipt, error) {
	args := m.Called(ctx, id)
	receipt, _ := args.Get(0).(*entity.FeeReceipt)

	return receipt, args.Error(1)
}

func (m *mockFeeRepository) ListReceiptsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.FeeReceipt, error) {
	args := m.Called(ctx, householdID)
	receipts, _ := args.Get(0).([]*entity.FeeReceipt)

	return receipts, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateTokens(userID uuid.UUID, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) ValidateToken(tokenString string, secret string) (*jwt.Token, error) {
	args := m.Called(tokenString, secret)
	token, _ := args.Get(0).(*jwt.Token)

	return token, args.Error(1)
}

type mockPushService struct {
	mock.Mock
}

func (m *mockPushService) SendToUser(ctx context.Context, userID string, title, body string, data map[string]string) error {
	return m.Called(ctx, userID, title, body, data).Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishDecisionEvent(ctx context.Context, event *service.DecisionEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type mockReceiptCodeService struct {
	mock.Mock
}

func (m *mockReceiptCodeService) GenerateReceiptQR(receiptID uuid.UUID) ([]byte, error) {
	args := m.Called(receiptID)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}

func (m *mockReceiptCodeService) ParseReceiptQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return args.Get(0).(uuid.UUID), args.Error(1)
}

// mockDecisionNotifier records the notices it receives so tests can assert
// on fan-out without a real notification stack.
type mockDecisionNotifier struct {
	mock.Mock
}

func (m *mockDecisionNotifier) NotifyDecision(ctx context.Context, notice usecase.DecisionNotice) {
	m.Called(ctx, notice)
}

// stubRepositoryFactory hands out the fixed repositories of a test case.
type stubRepositoryFactory struct {
	residents  repository.ResidentRepository
	households repository.HouseholdRepository
	requests   repository.JoinRequestRepository
	events     repository.ResidencyEventRepository
}

func (f stubRepositoryFactory) NewResidentRepository() repository.ResidentRepository {
	return f.residents
}

func (f stubRepositoryFactory) NewHouseholdRepository() repository.HouseholdRepository {
	return f.households
}

func (f stubRepositoryFactory) NewJoinRequestRepository() repository.JoinRequestRepository {
	return f.requests
}

func (f stubRepositoryFactory) NewResidencyEventRepository() repository.ResidencyEventRepository {
	return f.events
}

// passthroughTxManager runs the callback directly against the stub factory.
// An error from the callback surfaces unchanged, matching a rolled-back
// transaction from the caller's point of view.
type passthroughTxManager struct {
	factory repository.RepositoryFactory
}

func (m passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}
