// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/router/handler"
	"commune/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler           *handler.UserHandler
	ResidentHandler       *handler.ResidentHandler
	HouseholdHandler      *handler.HouseholdHandler
	JoinRequestHandler    *handler.JoinRequestHandler
	ResidencyEventHandler *handler.ResidencyEventHandler
	FeeHandler            *handler.FeeHandler
	FeedbackHandler       *handler.FeedbackHandler
	NotificationHandler   *handler.NotificationHandler
	AuthMiddleware        *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler           *handler.UserHandler
	residentHandler       *handler.ResidentHandler
	householdHandler      *handler.HouseholdHandler
	joinRequestHandler    *handler.JoinRequestHandler
	residencyEventHandler *handler.ResidencyEventHandler
	feeHandler            *handler.FeeHandler
	feedbackHandler       *handler.FeedbackHandler
	notificationHandler   *handler.NotificationHandler
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:           params.UserHandler,
		residentHandler:       params.ResidentHandler,
		householdHandler:      params.HouseholdHandler,
		joinRequestHandler:    params.JoinRequestHandler,
		residencyEventHandler: params.ResidencyEventHandler,
		feeHandler:            params.FeeHandler,
		feedbackHandler:       params.FeedbackHandler,
		notificationHandler:   params.NotificationHandler,
		authMiddleware:        params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Account registration is performed by registry staff for residents,
	// so it sits behind authentication unlike a self-service signup.
	registerGroup := e.Group("/auth")
	registerGroup.Use(r.authMiddleware.Authenticate)
	{
		registerGroup.POST("/register", r.userHandler.Register)
	}

	// User routes that require authentication
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetProfile)
	}

	// Resident registry
	residentGroup := e.Group("/residents")
	residentGroup.Use(r.authMiddleware.Authenticate)
	{
		residentGroup.POST("", r.residentHandler.Create)
		residentGroup.GET("", r.residentHandler.List)
		residentGroup.GET("/:id", r.residentHandler.Get)
		residentGroup.PUT("/:id", r.residentHandler.Update)
	}

	// Household registry
	householdGroup := e.Group("/households")
	householdGroup.Use(r.authMiddleware.Authenticate)
	{
		householdGroup.POST("", r.householdHandler.Create)
		householdGroup.GET("", r.householdHandler.List)
		householdGroup.GET("/:id", r.householdHandler.Get)
		householdGroup.PUT("/:id", r.householdHandler.Update)
		householdGroup.GET("/:id/receipts", r.feeHandler.ListHouseholdReceipts)
	}

	// Household join requests
	joinGroup := e.Group("/join-requests")
	joinGroup.Use(r.authMiddleware.Authenticate)
	{
		joinGroup.POST("", r.joinRequestHandler.Submit)
		joinGroup.GET("", r.joinRequestHandler.List)
		joinGroup.GET("/:id", r.joinRequestHandler.Get)
		joinGroup.POST("/:id/decide", r.joinRequestHandler.Decide)
	}

	// Temporary residence and temporary absence declarations share one
	// handler parameterized by the event kind.
	tempResidenceGroup := e.Group("/temporary-residences")
	tempResidenceGroup.Use(r.authMiddleware.Authenticate)
	{
		tempResidenceGroup.POST("", r.residencyEventHandler.Submit(entity.KindTemporaryResidence))
		tempResidenceGroup.GET("", r.residencyEventHandler.List(entity.KindTemporaryResidence))
	}

	tempAbsenceGroup := e.Group("/temporary-absences")
	tempAbsenceGroup.Use(r.authMiddleware.Authenticate)
	{
		tempAbsenceGroup.POST("", r.residencyEventHandler.Submit(entity.KindTemporaryAbsence))
		tempAbsenceGroup.GET("", r.residencyEventHandler.List(entity.KindTemporaryAbsence))
	}

	eventGroup := e.Group("/residency-events")
	eventGroup.Use(r.authMiddleware.Authenticate)
	{
		eventGroup.GET("/:id", r.residencyEventHandler.Get)
		eventGroup.POST("/:id/decide", r.residencyEventHandler.Decide)
	}

	// Fees and receipts
	feeGroup := e.Group("/fees")
	feeGroup.Use(r.authMiddleware.Authenticate)
	{
		feeGroup.POST("/items", r.feeHandler.CreateItem)
		feeGroup.GET("/items", r.feeHandler.ListItems)
		feeGroup.POST("/receipts", r.feeHandler.RecordReceipt)
		feeGroup.GET("/receipts/:id/qr", r.feeHandler.ReceiptQR)
	}

	// Resident feedback
	feedbackGroup := e.Group("/feedback")
	feedbackGroup.Use(r.authMiddleware.Authenticate)
	{
		feedbackGroup.POST("", r.feedbackHandler.Submit)
		feedbackGroup.GET("", r.feedbackHandler.List)
		feedbackGroup.POST("/:id/respond", r.feedbackHandler.Respond)
	}

	// Notifications
	notificationGroup := e.Group("/notifications")
	notificationGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.ListOwn)
		notificationGroup.POST("/:id/read", r.notificationHandler.MarkRead)
	}
}
