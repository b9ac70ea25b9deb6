// Package intake implements the write path for lead submissions:
// normalize, route, persist, notify.
package intake

import (
	"context"
	"fmt"
	"time"

	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/internal/observability/metrics"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

// Notifier sends the two emails tied to a submission.
type Notifier interface {
	NotifyOperator(ctx context.Context, lead *leads.Lead, recipient string) error
	AcknowledgeSubmitter(ctx context.Context, lead *leads.Lead) error
}

// Router resolves a lead's project types to an operator mailbox.
type Router interface {
	Resolve(projectTypes []string) string
}

// Service handles one inbound lead end to end.
type Service struct {
	repo    leads.Repository
	router  Router
	mailer  Notifier
	logger  *logging.Logger
	metrics *metrics.IntakeMetrics
}

// NewService wires the submission pipeline.
func NewService(repo leads.Repository, router Router, mailer Notifier, m *metrics.IntakeMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:    repo,
		router:  router,
		mailer:  mailer,
		logger:  logger,
		metrics: m,
	}
}

// Submit normalizes the request, resolves the routing recipient, persists
// the lead and dispatches notifications. A persistence failure fails the
// whole request; notification failures are logged and do not undo the
// persisted record.
func (s *Service) Submit(ctx context.Context, req *leads.CreateLeadRequest) (*leads.Lead, error) {
	start := time.Now()
	req.Normalize()

	recipient := s.router.Resolve(req.ProjectTypes)

	lead, err := s.repo.Create(ctx, req)
	if err != nil {
		s.metrics.ObserveLead(req.Source, "persist_error")
		return nil, fmt.Errorf("intake: persist lead: %w", err)
	}

	s.logger.Info("lead created",
		"id", lead.ID,
		"source", lead.Source,
		"project_types", lead.ProjectTypes,
		"routed_to", recipient,
	)

	// Persistence decided the outcome; notifications are best-effort
	// from here on.
	if s.mailer != nil {
		if err := s.mailer.NotifyOperator(ctx, lead, recipient); err != nil {
			s.logger.Error("operator notification failed", "error", err, "lead_id", lead.ID, "recipient", recipient)
			s.metrics.ObserveNotification("operator", err)
		} else {
			s.metrics.ObserveNotification("operator", nil)
		}

		if lead.Email != "" {
			if err := s.mailer.AcknowledgeSubmitter(ctx, lead); err != nil {
				s.logger.Error("submitter acknowledgment failed", "error", err, "lead_id", lead.ID)
				s.metrics.ObserveNotification("acknowledgment", err)
			} else {
				s.metrics.ObserveNotification("acknowledgment", nil)
			}
		}
	}

	s.metrics.ObserveLead(lead.Source, "accepted")
	s.metrics.ObserveLatency(time.Since(start).Seconds())
	return lead, nil
}
