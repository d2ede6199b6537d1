package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/noteskart/noteskart/internal/auth"
	"github.com/noteskart/noteskart/internal/aws"
	"github.com/noteskart/noteskart/internal/handlers"
	"github.com/noteskart/noteskart/internal/payments"
)

func setupRouter(cfg handlers.HandlerConfig, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(auth.SessionMiddleware(sessionSecret))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// landing page; flash messages surface here after uploads and logouts
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "noteskart", "flashes": auth.Flashes(c)})
	})

	handlers.RegisterUserRoutes(r, cfg)
	handlers.RegisterNotesRoutes(r, cfg)
	handlers.RegisterPaymentRoutes(r, cfg)

	return r
}

func gatewayTimeout() time.Duration {
	if raw := os.Getenv("GATEWAY_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		log.Printf("invalid GATEWAY_TIMEOUT %q, using default", os.Getenv("GATEWAY_TIMEOUT"))
	}
	return 10 * time.Second
}

func main() {
	clients, err := aws.NewAWSClients(context.Background())

	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	gateway := payments.NewRazorpayGateway(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
		gatewayTimeout(),
	)

	cfg := handlers.HandlerConfig{
		DynamoDBClient:    clients.DynamoDB,
		SQSClient:         clients.SQS,
		S3Client:          clients.S3,
		Region:            clients.Region,
		NotesTable:        os.Getenv("NOTES_TABLE"),
		UsersTable:        os.Getenv("USERS_TABLE"),
		ReceiptsTable:     os.Getenv("RECEIPTS_TABLE"),
		FilesBucket:       os.Getenv("FILES_BUCKET"),
		QueueURL:          os.Getenv("PURCHASES_QUEUE_URL"),
		Gateway:           gateway,
		PaymentSecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		SingleUseReceipts: os.Getenv("SINGLE_USE_RECEIPTS") == "true",
		TTLWindow:         48 * time.Hour,
	}

	r := setupRouter(cfg, os.Getenv("SESSION_SECRET"))

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		// the adapter handles proxying; use adapter.ProxyWithContext for proper context propagation
		return adapter.ProxyWithContext(ctx, req)
	})
}
