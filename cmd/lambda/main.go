package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"

	"hrdesk-backend/infrastructure/config"
	"hrdesk-backend/infrastructure/persistence"
	"hrdesk-backend/interfaces/http/rest"
	"hrdesk-backend/pkg/logging"
)

// chiLambda wraps the chi router for API Gateway integration. Built once per
// cold start and reused across invocations.
var chiLambda *chiadapter.ChiLambdaV2

func init() {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	store, err := persistence.NewStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	handler := rest.NewRouter(store, logger).Setup()
	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	log.Printf("Lambda cold start completed in %v", time.Since(start))
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
