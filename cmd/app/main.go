package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/crave-catering/cc-order/config"
	adminapp_dispatch "github.com/crave-catering/cc-order/internal/module/adminapp/dispatch"
	adminapp_menu "github.com/crave-catering/cc-order/internal/module/adminapp/menu"
	adminapp_order "github.com/crave-catering/cc-order/internal/module/adminapp/order"
	adminapp_promotion "github.com/crave-catering/cc-order/internal/module/adminapp/promotion"
	customerapp_dispatch "github.com/crave-catering/cc-order/internal/module/customerapp/dispatch"
	customerapp_order "github.com/crave-catering/cc-order/internal/module/customerapp/order"
	customerapp_payment "github.com/crave-catering/cc-order/internal/module/customerapp/payment"
	customerapp_promotion "github.com/crave-catering/cc-order/internal/module/customerapp/promotion"
	customerapp_wizard "github.com/crave-catering/cc-order/internal/module/customerapp/wizard"
	"github.com/crave-catering/cc-order/internal/pkg/jwt"
	internalMiddleware "github.com/crave-catering/cc-order/internal/pkg/middleware"
	"github.com/crave-catering/cc-order/internal/pkg/session"
	"github.com/crave-catering/cc-order/pkg/applogger"
	"github.com/crave-catering/cc-order/pkg/gctasks"
	"github.com/crave-catering/cc-order/pkg/kafka"
	"github.com/crave-catering/cc-order/pkg/middleware"
	"github.com/crave-catering/cc-order/pkg/monitoring"
	"github.com/crave-catering/cc-order/pkg/postgresql"
	"github.com/crave-catering/cc-order/pkg/pubsub"
	"github.com/crave-catering/cc-order/pkg/redis"
	"github.com/crave-catering/cc-order/pkg/server"
	"github.com/crave-catering/cc-order/pkg/validator"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
		c.GCP.ProjectID,
	)

	mon.Start(ctx)

	validate := validator.Get()

	hc := http.DefaultClient

	jsonWebToken := jwt.NewJSONWebToken(c.JWT.PrivateKey, c.JWT.PublicKey)

	psqldb := postgresql.GetDatabase()
	if err := psqldb.Ping(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher := pubsub.PublisherFromConfluentKafkaProducer(logger, kafka.NewProducer())

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	cloudTask := gctasks.NewGCTasks(logger, c.GCP.ProjectID, c.GCP.Location, c.GCP.ServiceAccount)

	sessionStore := session.NewRedisSessionStore(logger, rc)

	customerSessionMiddleware := internalMiddleware.NewCustomerSessionMiddleware(jsonWebToken, sessionStore)
	adminSessionMiddleware := internalMiddleware.NewAdminSessionMiddleware(jsonWebToken, sessionStore)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	// customer's app
	customerappOrderRepo := customerapp_order.NewOrderRepository(logger, psqldb)
	customerappLunchSelectionRepo := customerapp_order.NewLunchSelectionRepository(logger, psqldb)
	customerappPromotionRepo := customerapp_promotion.NewPromotionRepository(logger, psqldb)
	customerappPaymentRepo := customerapp_payment.NewPaymentRepository(c.Payment.BaseURL, c.Payment.BasicAuthKey, logger, hc)
	customerappOrderUseCase := customerapp_order.NewOrderUseCase(customerapp_order.OrderUseCaseProperty{
		Logger:                   logger,
		Timeout:                  c.Application.Timeout,
		BaseURL:                  c.Application.BaseURL,
		OrderExpireDuration:      c.Order.Expiration,
		OrderRepository:          customerappOrderRepo,
		LunchSelectionRepository: customerappLunchSelectionRepo,
		PromotionRepository:      customerappPromotionRepo,
		PaymentRepository:        customerappPaymentRepo,
		Publisher:                publisher,
		CloudTask:                cloudTask,
	})
	customerapp_order.InitHTTPHandler(router, customerSessionMiddleware, validate, customerappOrderUseCase)

	customerappWizardStore := customerapp_wizard.NewRedisStore(logger, rc, c.Wizard.TTL)
	customerapp_wizard.InitHTTPHandler(router, customerSessionMiddleware, customerappWizardStore)

	customerappDispatchRepo := customerapp_dispatch.NewDispatchRepository(c.Dispatch.BaseURL, c.Dispatch.APIKey, logger, hc)
	customerappTrackingCache := customerapp_dispatch.NewRedisTrackingCache(logger, rc)
	customerappTrackingUseCase := customerapp_dispatch.NewTrackingUseCase(customerapp_dispatch.TrackingUseCaseProperty{
		Logger:             logger,
		Timeout:            c.Application.Timeout,
		OrderRepository:    customerappOrderRepo,
		DispatchRepository: customerappDispatchRepo,
		Cache:              customerappTrackingCache,
	})
	customerapp_dispatch.InitHTTPHandler(router, customerSessionMiddleware, customerappTrackingUseCase)

	// admin's app
	adminappOrderRepo := adminapp_order.NewOrderRepository(logger, psqldb)
	adminappDispatchRepo := adminapp_dispatch.NewDispatchRepository(c.Dispatch.BaseURL, c.Dispatch.APIKey, logger, hc)
	adminappOrderUseCase := adminapp_order.NewOrderUseCase(adminapp_order.OrderUseCaseProperty{
		Logger:             logger,
		Timeout:            c.Application.Timeout,
		OrderRepository:    adminappOrderRepo,
		DispatchRepository: adminappDispatchRepo,
		Publisher:          publisher,
		PickupName:         c.Dispatch.PickupName,
	})
	adminapp_order.InitHTTPHandler(router, adminSessionMiddleware, validate, adminappOrderUseCase)

	adminappPackageRepo := adminapp_menu.NewPackageRepository(logger, psqldb)
	adminappPackageUseCase := adminapp_menu.NewPackageUseCase(adminapp_menu.PackageUseCaseProperty{
		Logger:            logger,
		Timeout:           c.Application.Timeout,
		PackageRepository: adminappPackageRepo,
	})
	adminapp_menu.InitHTTPHandler(router, adminSessionMiddleware, validate, adminappPackageUseCase)

	adminappPromotionRepo := adminapp_promotion.NewPromotionRepository(logger, psqldb)
	adminappPromotionUseCase := adminapp_promotion.NewPromotionUseCase(adminapp_promotion.PromotionUseCaseProperty{
		Logger:              logger,
		Timeout:             c.Application.Timeout,
		PromotionRepository: adminappPromotionRepo,
		Publisher:           publisher,
	})
	adminapp_promotion.InitHTTPHandler(router, adminSessionMiddleware, validate, adminappPromotionUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	publisher.Close()
	psqldb.Close()
	rc.Close()
	mon.Stop(ctx)
}
