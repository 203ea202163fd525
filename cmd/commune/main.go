package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"commune/config"
	"commune/internal/delivery"
	"commune/internal/delivery/http"
	"commune/internal/delivery/http/middleware"
	"commune/internal/delivery/http/router/handler"
	"commune/internal/domain/service"
	"commune/internal/infra/auth"
	logs "commune/internal/infra/log"
	"commune/internal/infra/notification"
	"commune/internal/infra/persistence/postgres"
	"commune/internal/infra/pubsub"
	"commune/internal/infra/qrcode"
	"commune/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewResidentRepository,
			postgres.NewHouseholdRepository,
			postgres.NewJoinRequestRepository,
			postgres.NewResidencyEventRepository,
			postgres.NewNotificationRepository,
			postgres.NewFeeRepository,
			postgres.NewFeedbackRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newFirebaseService,
			newReceiptCodeService,
			pubsub.NewEventPublisher,
		),
	)
}

// newFirebaseService creates a Firebase push service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.PushService, error) {
	if cfg.Firebase == nil {
		return nil, nil // push notifications are optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newReceiptCodeService creates the fee receipt QR service with dependency injection
func newReceiptCodeService(cfg *config.Config) service.ReceiptCodeService {
	if cfg.Receipt == nil {
		// Use default values if not configured
		return qrcode.NewReceiptCodeService(256, "M")
	}

	return qrcode.NewReceiptCodeService(cfg.Receipt.QRCodeSize, cfg.Receipt.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDecisionNotifier,
			impl.NewUserService,
			impl.NewResidentService,
			impl.NewHouseholdService,
			impl.NewJoinRequestService,
			impl.NewResidencyEventService,
			impl.NewFeeService,
			impl.NewFeedbackService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewResidentHandler,
			handler.NewHouseholdHandler,
			handler.NewJoinRequestHandler,
			handler.NewResidencyEventHandler,
			handler.NewFeeHandler,
			handler.NewFeedbackHandler,
			handler.NewNotificationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
