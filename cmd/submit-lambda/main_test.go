package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"github.com/econova-solutions/lead-platform/internal/config"
	"github.com/econova-solutions/lead-platform/internal/intake"
	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/internal/notify"
	"github.com/econova-solutions/lead-platform/internal/routing"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

func testHandler(t *testing.T) (*handler, *leads.InMemoryRepository) {
	t.Helper()
	cfg := &config.Config{
		DefaultLeadEmail: "leads@econova.fr",
		HeatPumpEmail:    "pac@econova.fr",
		SolarEmail:       "solar@econova.fr",
		InsulationEmail:  "isolation@econova.fr",
		EVChargerEmail:   "ev@econova.fr",
	}
	repo := leads.NewInMemoryRepository()
	service := intake.NewService(repo, routing.NewResolver(cfg), notify.NewLeadMailer(nil, nil), nil, nil)
	return &handler{service: service, logger: logging.Default()}, repo
}

func TestHandleSubmitsLead(t *testing.T) {
	h, repo := testHandler(t)
	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"name":"Jean Dupont","email":"jean@example.com","projectType":"Isolation"}`,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Body)
	}
	if !strings.Contains(resp.Body, `"success":true`) {
		t.Errorf("unexpected body: %s", resp.Body)
	}

	stored, err := repo.List(context.Background(), leads.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(stored))
	}
	if got := stored[0].ProjectTypes; len(got) != 1 || got[0] != "Isolation" {
		t.Errorf("unexpected project types: %v", got)
	}
}

func TestHandleDecodesBase64Body(t *testing.T) {
	h, repo := testHandler(t)
	body := base64.StdEncoding.EncodeToString([]byte(`{"name":"Marie","projectTypes":["Borne de recharge"]}`))
	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            body,
		IsBase64Encoded: true,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	stored, _ := repo.List(context.Background(), leads.ListFilter{})
	if len(stored) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(stored))
	}
}

func TestHandleRejectsNonPost(t *testing.T) {
	h, repo := testHandler(t)
	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
	stored, _ := repo.List(context.Background(), leads.ListFilter{})
	if len(stored) != 0 {
		t.Errorf("expected no leads persisted, got %d", len(stored))
	}
}

func TestHandleRejectsMalformedBody(t *testing.T) {
	h, _ := testHandler(t)
	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"name":`,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
