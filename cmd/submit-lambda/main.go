// Lambda entrypoint for the landing-page form, deployed behind API Gateway.
// It runs the same intake pipeline as the API server but persists to DynamoDB
// and notifies through SES.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/econova-solutions/lead-platform/cmd/mainconfig"
	appconfig "github.com/econova-solutions/lead-platform/internal/config"
	"github.com/econova-solutions/lead-platform/internal/intake"
	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/internal/notify"
	"github.com/econova-solutions/lead-platform/internal/routing"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		panic(err)
	}

	repo := leads.NewDynamoRepository(dynamodb.NewFromConfig(awsCfg), cfg.LeadsTable, logger)
	sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	}, logger)
	mailer := notify.NewLeadMailer(sender, logger)
	service := intake.NewService(repo, routing.NewResolver(cfg), mailer, nil, logger)

	h := &handler{service: service, logger: logger}
	lambda.Start(h.handle)
}

type handler struct {
	service *intake.Service
	logger  *logging.Logger
}

func (h *handler) handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if !strings.EqualFold(evt.HTTPMethod, http.MethodPost) {
		return respond(http.StatusMethodNotAllowed, map[string]string{"error": "Method Not Allowed"}), nil
	}

	body := []byte(evt.Body)
	if evt.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(evt.Body)
		if err != nil {
			return respond(http.StatusBadRequest, map[string]string{"error": "Invalid request body"}), nil
		}
		body = decoded
	}

	var req leads.CreateLeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return respond(http.StatusBadRequest, map[string]string{"error": "Invalid request body"}), nil
	}

	if _, err := h.service.Submit(ctx, &req); err != nil {
		h.logger.Error("lead submission failed", "error", err)
		return respond(http.StatusInternalServerError, map[string]string{"error": "Lead not saved"}), nil
	}

	return respond(http.StatusOK, map[string]bool{"success": true}), nil
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	encoded, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(encoded),
	}
}
