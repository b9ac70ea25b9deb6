// Package routing maps a lead's selected project types to the operator
// mailbox responsible for that product line.
package routing

import "github.com/econova-solutions/lead-platform/internal/config"

// Project-type labels as the landing-page forms submit them.
const (
	ProjectHeatPump         = "Pompe à chaleur"
	ProjectSolarPanels      = "Panneaux solaires"
	ProjectSolarWaterHeater = "Chauffe-eau solaire"
	ProjectInsulation       = "Isolation"
	ProjectEVCharger        = "Borne de recharge"
)

// Resolver holds the immutable project-type to mailbox table. It is built
// once at startup and never mutated afterwards, so it is safe for
// concurrent use.
type Resolver struct {
	byProject    map[string]string
	defaultEmail string
}

// NewResolver builds the routing table from configuration.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		byProject: map[string]string{
			ProjectHeatPump:         cfg.HeatPumpEmail,
			ProjectSolarPanels:      cfg.SolarEmail,
			ProjectSolarWaterHeater: cfg.SolarEmail,
			ProjectInsulation:       cfg.InsulationEmail,
			ProjectEVCharger:        cfg.EVChargerEmail,
		},
		defaultEmail: cfg.DefaultLeadEmail,
	}
}

// Resolve returns the mailbox for the first project type that has a
// routing entry, scanning in caller order. Unknown labels are skipped;
// an empty or fully-unknown list resolves to the default mailbox.
func (r *Resolver) Resolve(projectTypes []string) string {
	for _, pt := range projectTypes {
		if email, ok := r.byProject[pt]; ok {
			return email
		}
	}
	return r.defaultEmail
}

// DefaultEmail returns the fallback mailbox.
func (r *Resolver) DefaultEmail() string {
	return r.defaultEmail
}
