package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"coach-crm/consumer"
	"coach-crm/handlers"
	"coach-crm/middleware"
	"coach-crm/models"
	"coach-crm/monitoring"
	"coach-crm/suggest"
	"coach-crm/utils"
)

func main() {
	logger := log.New(os.Stdout, "COACH-CRM: ", log.LstdFlags|log.Lshortfile)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := utils.InitSentry(dsn); err != nil {
			logger.Printf("Sentry disabled: %v", err)
		}
	}

	monitoring.Init()

	// Redis holds the single storage slot; retry in case it comes up
	// after us.
	var redisClient utils.RedisClient
	var err error
	maxRetries := 5
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		redisClient, err = utils.NewRedisClient()
		if err == nil {
			break
		}
		logger.Printf("Attempt %d: Failed to connect to Redis: %v", i+1, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		logger.Fatalf("Failed to initialize Redis after %d attempts: %v", maxRetries, err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Printf("Error closing Redis connection: %v", err)
		}
	}()

	storage := models.NewRedisStorage(redisClient, os.Getenv("STORAGE_KEY"))
	repo := models.NewClientRepository(storage)
	suggestSvc := suggest.NewService()

	var kafkaProducer utils.KafkaProducer
	if kafkaProducer, err = utils.NewKafkaProducer(); err != nil {
		logger.Printf("Kafka disabled: %v", err)
		kafkaProducer = nil
	} else {
		defer kafkaProducer.Close()
	}

	if kafkaProducer != nil {
		if esClient, err := utils.NewElasticsearchClient(); err != nil {
			logger.Printf("Elasticsearch indexer disabled: %v", err)
		} else {
			clientConsumer := consumer.NewClientConsumer(esClient)
			clientConsumer.Start(context.Background())
			defer clientConsumer.Stop()
		}
	}

	clientHandler := handlers.NewClientHandler(repo, suggestSvc, kafkaProducer)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.PrometheusMetrics(), middleware.SentryMiddleware(), middleware.ErrorHandler())

	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "degraded",
					"details": gin.H{"redis": "unavailable"},
					"error":   err.Error(),
				})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"details": gin.H{"redis": "available"},
			})
		})

		api.POST("/clients", clientHandler.CreateClient)
		api.GET("/clients", clientHandler.ListClients)
		api.GET("/clients/:id", clientHandler.GetClient)
		api.PUT("/clients/:id", clientHandler.UpdateClient)
		api.DELETE("/clients/:id", clientHandler.DeleteClient)
		api.POST("/clients/:id/history", clientHandler.AddHistoryEntry)
		api.GET("/clients/:id/suggestions", clientHandler.SuggestExercises)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Printf("Server is running on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
