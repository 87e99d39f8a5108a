// @title Antique Store REST API
// @version v1
// @description Catalogue of antique store products with name and tag search.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/antique-store-api/internal/config"
	httpAPI "github.com/iyhunko/antique-store-api/internal/http"
	"github.com/iyhunko/antique-store-api/internal/http/controller"
	"github.com/iyhunko/antique-store-api/internal/logger"
	"github.com/iyhunko/antique-store-api/internal/metrics"
	"github.com/iyhunko/antique-store-api/internal/repository"
	"github.com/iyhunko/antique-store-api/internal/service"
	sqspkg "github.com/iyhunko/antique-store-api/internal/sqs"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	level := conf.LogLevel
	gin.SetMode(gin.ReleaseMode)
	if conf.DebugMode {
		level = "debug"
		gin.SetMode(gin.DebugMode)
	}
	logger.InitJSONLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, conf.Database)
	handleErr("opening product store", err)
	defer closeStore()

	var publisher service.EventPublisher
	if conf.AWS.NotificationsEnabled() {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS)
		handleErr("creating SQS client", err)
		publisher = sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)
		slog.Info("Product change notifications enabled", slog.String("queueURL", conf.AWS.SQSQueueURL))
	}

	productService := service.NewProductService(repository.NewProductRepository(store), publisher)

	ctr := controller.New(conf)
	productCtr := controller.NewProductController(productService)
	router := httpAPI.InitRouter(conf, gin.New(), ctr, productCtr)

	httpServer := &http.Server{
		Addr:    ":" + conf.HTTPServer.Port,
		Handler: router,
	}
	metricsServer := metrics.NewServer(conf)

	go serve("HTTP", httpServer)
	go serve("metrics", metricsServer)

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", slog.Any("err", err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics server shutdown failed", slog.Any("err", err))
	}
}

func serve(name string, server *http.Server) {
	slog.Info("Server starting", slog.String("server", name), slog.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		handleErr("listening to "+name+" requests", err)
	}
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
