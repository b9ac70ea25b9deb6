package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/econova-solutions/lead-platform/internal/leads"
	"github.com/econova-solutions/lead-platform/pkg/logging"
)

// LeadMailer composes and sends the two notifications tied to a lead
// submission: the operator-facing alert and the submitter-facing
// acknowledgment.
type LeadMailer struct {
	sender EmailSender
	logger *logging.Logger
}

// NewLeadMailer creates a mailer on top of the given sender.
func NewLeadMailer(sender EmailSender, logger *logging.Logger) *LeadMailer {
	if sender == nil {
		sender = NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadMailer{sender: sender, logger: logger}
}

// NotifyOperator sends the full lead details to the resolved mailbox.
// The reply-to is set to the submitter so operators can answer directly.
func (m *LeadMailer) NotifyOperator(ctx context.Context, lead *leads.Lead, recipient string) error {
	projects := strings.Join(lead.ProjectTypes, ", ")
	if projects == "" {
		projects = "Non précisé"
	}
	message := lead.Message
	if message == "" {
		message = "-"
	}

	var utm string
	if lead.UTMSource != "" || lead.UTMCampaign != "" {
		utm = fmt.Sprintf("\nUTM : %s / %s", orDash(lead.UTMSource), orDash(lead.UTMCampaign))
	}

	body := fmt.Sprintf(`NOUVEAU LEAD — EcoNova Solutions

Nom : %s
Email : %s
Téléphone : %s
Adresse : %s
Code postal : %s
Projet(s) : %s

Message :
%s

Source : %s%s
Reçu le : %s

ROUTÉ VERS : %s
`,
		lead.Name, lead.Email, lead.Phone, lead.Address, lead.PostalCode, projects,
		message, lead.Source, utm, lead.CreatedAt.Format("02/01/2006 à 15:04"), recipient)

	msg := EmailMessage{
		To:      recipient,
		ReplyTo: lead.Email,
		Subject: fmt.Sprintf("🔥 Nouveau lead – %s", firstOr(lead.ProjectTypes, "Projet énergie")),
		Body:    body,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: operator notification failed: %w", err)
	}
	return nil
}

// AcknowledgeSubmitter sends a short receipt to the lead when an email
// address was supplied. Callers treat this as best-effort.
func (m *LeadMailer) AcknowledgeSubmitter(ctx context.Context, lead *leads.Lead) error {
	if lead.Email == "" {
		m.logger.Debug("no submitter email, skipping acknowledgment", "lead_id", lead.ID)
		return nil
	}

	projects := strings.Join(lead.ProjectTypes, ", ")
	if projects == "" {
		projects = "votre projet de rénovation énergétique"
	}

	greeting := "Bonjour,"
	if lead.Name != "" {
		greeting = fmt.Sprintf("Bonjour %s,", lead.Name)
	}

	body := fmt.Sprintf(`%s

Nous avons bien reçu votre demande concernant : %s.

Un conseiller EcoNova vous recontactera sous 24h ouvrées pour étudier
votre projet et vous proposer un devis gratuit.

À très bientôt,
L'équipe EcoNova Solutions
`, greeting, projects)

	msg := EmailMessage{
		To:      lead.Email,
		ToName:  lead.Name,
		Subject: "Votre demande a bien été reçue – EcoNova Solutions",
		Body:    body,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: submitter acknowledgment failed: %w", err)
	}
	return nil
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
