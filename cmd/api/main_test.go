package main

import (
	"context"
	"testing"

	appconfig "github.com/econova-solutions/lead-platform/internal/config"
	"github.com/econova-solutions/lead-platform/internal/notify"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

func TestBuildEmailSenderDefaultsToStub(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{EmailProvider: "auto"}

	sender := buildEmailSender(context.Background(), cfg, logger)
	if _, ok := sender.(*notify.StubEmailSender); !ok {
		t.Fatalf("expected stub sender without credentials, got %T", sender)
	}
}

func TestBuildEmailSenderPrefersSendGrid(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{
		EmailProvider:  "auto",
		SendGridAPIKey: "SG.test",
		FromEmail:      "no-reply@econova.fr",
	}

	sender := buildEmailSender(context.Background(), cfg, logger)
	if _, ok := sender.(*notify.SendGridSender); !ok {
		t.Fatalf("expected sendgrid sender, got %T", sender)
	}
}

func TestBuildEmailSenderExplicitSES(t *testing.T) {
	logger := logging.New("error")
	cfg := &appconfig.Config{
		EmailProvider:      "ses",
		AWSRegion:          "eu-west-3",
		AWSAccessKeyID:     "test",
		AWSSecretAccessKey: "test",
		FromEmail:          "no-reply@econova.fr",
	}
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	sender := buildEmailSender(context.Background(), cfg, logger)
	if _, ok := sender.(*notify.SESSender); !ok {
		t.Fatalf("expected SES sender, got %T", sender)
	}
}
