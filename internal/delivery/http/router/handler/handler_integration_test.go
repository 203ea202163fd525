package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"commune/internal/delivery/http/middleware"
	httpvalidator "commune/internal/delivery/http/validator"
	"commune/internal/domain/entity"
	"commune/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) Register(ctx context.Context, input usecase.RegisterUserInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.LoginOutput)

	return output, args.Error(1)
}

func (m *mockUserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

type mockJoinRequestUsecase struct {
	mock.Mock
}

func (m *mockJoinRequestUsecase) Submit(ctx context.Context, input usecase.SubmitJoinRequestInput) (*entity.JoinRequest, error) {
	args := m.Called(ctx, input)
	request, _ := args.Get(0).(*entity.JoinRequest)

	return request, args.Error(1)
}

func (m *mockJoinRequestUsecase) Decide(ctx context.Context, input usecase.DecideJoinRequestInput) (*entity.JoinRequest, error) {
	args := m.Called(ctx, input)
	request, _ := args.Get(0).(*entity.JoinRequest)

	return request, args.Error(1)
}

func (m *mockJoinRequestUsecase) Get(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.JoinRequest, error) {
	args := m.Called(ctx, actor, id)
	request, _ := args.Get(0).(*entity.JoinRequest)

	return request, args.Error(1)
}

func (m *mockJoinRequestUsecase) List(ctx context.Context, input usecase.ListJoinRequestsInput) ([]*entity.JoinRequest, error) {
	args := m.Called(ctx, input)
	requests, _ := args.Get(0).([]*entity.JoinRequest)

	return requests, args.Error(1)
}

// newTestContext builds an echo context with the request validator wired,
// the way the server configures it.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = httpvalidator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestUserHandler_Login_Integration(t *testing.T) {
	uc := new(mockUserUsecase)
	handler := &UserHandler{uc: uc, logger: slog.Default()}

	uc.On("Login", mock.Anything, usecase.LoginInput{
		Email:    "head@commune.vn",
		Password: "correct horse",
	}).Return(&usecase.LoginOutput{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		User:         &entity.User{ID: uuid.New(), Email: "head@commune.vn"},
	}, nil)

	c, rec := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"head@commune.vn","password":"correct horse"}`)

	err := handler.Login(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	responseBody := rec.Body.String()
	assert.Contains(t, responseBody, "test-access-token")
	assert.Contains(t, responseBody, "test-refresh-token")
	assert.Contains(t, responseBody, "head@commune.vn")
	uc.AssertExpectations(t)
}

func TestUserHandler_Login_RejectsMalformedEmail(t *testing.T) {
	uc := new(mockUserUsecase)
	handler := &UserHandler{uc: uc, logger: slog.Default()}

	c, _ := newTestContext(http.MethodPost, "/auth/login",
		`{"email":"not-an-email","password":"correct horse"}`)

	err := handler.Login(c)

	// The validator rejects the payload before the usecase is reached.
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestJoinRequestHandler_Decide_Integration(t *testing.T) {
	uc := new(mockJoinRequestUsecase)
	handler := &JoinRequestHandler{uc: uc, logger: slog.Default()}

	requestID := uuid.New()
	actor := entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleSupervisor}}

	uc.On("Decide", mock.Anything, mock.MatchedBy(func(input usecase.DecideJoinRequestInput) bool {
		return input.RequestID == requestID &&
			input.Decision == usecase.DecisionApprove &&
			input.Actor.UserID == actor.UserID
	})).Return(&entity.JoinRequest{ID: requestID, State: entity.JoinRequestApproved}, nil)

	c, rec := newTestContext(http.MethodPost, "/join-requests/"+requestID.String()+"/decide",
		`{"decision":"approve"}`)
	c.SetParamNames("id")
	c.SetParamValues(requestID.String())
	middleware.SetActor(c, actor)

	err := handler.Decide(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(entity.JoinRequestApproved))
	uc.AssertExpectations(t)
}

func TestJoinRequestHandler_Decide_MissingActor(t *testing.T) {
	uc := new(mockJoinRequestUsecase)
	handler := &JoinRequestHandler{uc: uc, logger: slog.Default()}

	c, rec := newTestContext(http.MethodPost, "/join-requests/"+uuid.NewString()+"/decide",
		`{"decision":"approve"}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := handler.Decide(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything)
}

func TestJoinRequestHandler_Decide_InvalidRequestID(t *testing.T) {
	uc := new(mockJoinRequestUsecase)
	handler := &JoinRequestHandler{uc: uc, logger: slog.Default()}

	c, rec := newTestContext(http.MethodPost, "/join-requests/not-a-uuid/decide",
		`{"decision":"approve"}`)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	middleware.SetActor(c, entity.Actor{UserID: uuid.New(), Roles: entity.Roles{entity.RoleAdmin}})

	err := handler.Decide(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything)
}
