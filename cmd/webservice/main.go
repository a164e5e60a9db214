package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tradewell/storefront/config"
	"github.com/tradewell/storefront/internal/controller"
	circuitbreaker "github.com/tradewell/storefront/internal/infrastructure/circuit-breaker"
	"github.com/tradewell/storefront/internal/infrastructure/database/mongodb"
	"github.com/tradewell/storefront/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/tradewell/storefront/internal/infrastructure/payment-gateway"
	"github.com/tradewell/storefront/internal/infrastructure/tracing"
	localmiddleware "github.com/tradewell/storefront/internal/middleware"
	"github.com/tradewell/storefront/internal/repository"
	"github.com/tradewell/storefront/internal/service"
	"github.com/tradewell/storefront/pkg/response"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	db, err := mongodb.ConnectToMongoDB(config.MongoDBConfig.URI, config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}

	kafkaProducer := kafka.CreateKafkaProducer(config)
	defer kafkaProducer.Close()

	midtransClient := paymentgateway.CreateMidtransClient(config)

	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	tracer := traceProvider.Tracer("storefront")

	e := echo.New()
	g := e.Group("/api/v1")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	e.Use(echoprometheus.NewMiddleware(""))
	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	mailBreaker := circuitbreaker.CreateCircuitBreaker("smtp")

	isLoggedIn := localmiddleware.CreateAuthMiddleware(config.JWTSecret)
	maybeLoggedIn := localmiddleware.CreateOptionalAuthMiddleware(config.JWTSecret)

	orderRepo := repository.CreateOrderRepository(db)
	productRepo := repository.CreateProductRepository(db)
	userRepo := repository.CreateUserRepository(db)
	quoteRepo := repository.CreateQuoteRepository(db)

	orderSvc := service.CreateOrderService(orderRepo, productRepo, userRepo, kafkaProducer, midtransClient, mailBreaker, config)
	productSvc := service.CreateProductService(productRepo)
	userSvc := service.CreateUserService(userRepo, mailBreaker, config)
	quoteSvc := service.CreateQuoteService(quoteRepo)

	notificationSvc := service.CreateNotificationService(kafka.CreateKafkaReader(config))
	go notificationSvc.Consume(context.Background())

	controller.CreateOrderController(g, orderSvc, isLoggedIn)
	controller.CreateProductController(g, productSvc, isLoggedIn)
	controller.CreateUserController(g, userSvc, isLoggedIn)
	controller.CreateQuoteController(g, quoteSvc, isLoggedIn, maybeLoggedIn)
	controller.CreateNotificationController(g, notificationSvc, isLoggedIn)

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			time.Minute,
		),
		gocron.NewTask(
			orderSvc.ExpireUnpaidOrders,
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
