package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/davidmr019/cafeteria_backend/internal/config"
	"github.com/davidmr019/cafeteria_backend/internal/es"
	"github.com/davidmr019/cafeteria_backend/internal/handlers"
	"github.com/davidmr019/cafeteria_backend/internal/logging"
	loggingmw "github.com/davidmr019/cafeteria_backend/internal/middleware/logging"
	"github.com/davidmr019/cafeteria_backend/internal/middleware/metrics"
	"github.com/davidmr019/cafeteria_backend/internal/mykafka"
	"github.com/davidmr019/cafeteria_backend/internal/service/order"
	"github.com/davidmr019/cafeteria_backend/internal/service/payment"
	httpserver "github.com/davidmr019/cafeteria_backend/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		log.Fatal("missing required env JWT_SECRET")
	}

	var producer *mykafka.Producer
	if brokers := configuration.KafkaBrokers(); len(brokers) > 0 {
		producer, err = mykafka.NewProducer(brokers)
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events disabled")
	}

	var searchHandler *handlers.SearchHandler

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.Middleware())

	orderService := &order.Service{DB: db}
	paymentService := &payment.Service{DB: db}

	menuHandler := &handlers.MenuHandler{DB: db, Producer: producer, ESIndex: configuration.ES_INDEX}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			menuHandler.ES = client
			searchHandler = &handlers.SearchHandler{ES: client, Index: configuration.ES_INDEX}
		}
	}

	deps := httpserver.Deps{
		DB:        db,
		JWTSecret: jwtSecret,
		AuthHandler: &handlers.AuthHandler{
			DB:             db,
			JWTSecret:      jwtSecret,
			AccessTokenTTL: time.Duration(configuration.ACCESS_TOKEN_EXPIRE_MIN) * time.Minute,
			Producer:       producer,
		},
		MenuHandler:    menuHandler,
		OrderHandler:   &handlers.OrderHandler{Service: orderService, Producer: producer},
		PaymentHandler: &handlers.PaymentHandler{Service: paymentService, Producer: producer},
		OfferHandler:   &handlers.OfferHandler{DB: db},
		UpdatesHandler: &handlers.UpdatesHandler{DB: db},
		UserHandler:    &handlers.UserHandler{DB: db},
		SearchHandler:  searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.SERVER_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", configuration.SERVER_PORT)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
