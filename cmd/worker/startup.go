package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// checkRedis verifies the broker is reachable before the worker starts
func checkRedis(c *container.Container) error {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Checking Redis connection...")
	return client.Ping(ctx).Err()
}

// startHealthCheckServer serves liveness and readiness probes
func startHealthCheckServer(port string) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "storefront-worker"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	log.Printf("[Health] Starting health check server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Printf("[Health] Failed to start: %v", err)
	}
}
