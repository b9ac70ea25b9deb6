package leads

import (
	"encoding/json"
	"strings"
	"time"
)

// Status tracks where a lead sits in the follow-up pipeline. Transitions
// are free-form; operators may set any of the three values at any time.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
)

// ValidStatus reports whether s is one of the three allowed values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified:
		return true
	}
	return false
}

// Lead represents a lead submission from one of the landing pages
type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PostalCode   string    `json:"postal_code"`
	ProjectTypes []string  `json:"project_types"`
	Message      string    `json:"message"`
	Source       string    `json:"source"`
	UTMSource    string    `json:"utm_source,omitempty"`
	UTMCampaign  string    `json:"utm_campaign,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// StringList decodes a JSON value that may be either a single string or a
// list of strings. Landing-page forms send a scalar when only one project
// type is selected.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	PostalCode   string     `json:"postalCode"`
	ProjectTypes StringList `json:"projectTypes"`
	Message      string     `json:"message"`
	Source       string     `json:"source"`
	UTMSource    string     `json:"utm_source"`
	UTMCampaign  string     `json:"utm_campaign"`
}

type createLeadRequestAlias CreateLeadRequest

type createLeadRequestWire struct {
	createLeadRequestAlias
	// Older landing pages post the selection under "projectType".
	LegacyProjectType StringList `json:"projectType"`
}

// UnmarshalJSON decodes the request, folding the legacy projectType key
// into ProjectTypes when the current key is absent.
func (r *CreateLeadRequest) UnmarshalJSON(data []byte) error {
	var wire createLeadRequestWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = CreateLeadRequest(wire.createLeadRequestAlias)
	if len(r.ProjectTypes) == 0 {
		r.ProjectTypes = wire.LegacyProjectType
	}
	return nil
}

// DefaultSource tags leads whose submitting page did not identify itself.
const DefaultSource = "landing-econova"

// Normalize trims whitespace, drops empty project-type entries and applies
// the default source tag. Intake accepts sparse payloads, so no field is
// rejected here.
func (r *CreateLeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.PostalCode = strings.TrimSpace(r.PostalCode)
	r.Message = strings.TrimSpace(r.Message)
	r.Source = strings.TrimSpace(r.Source)
	if r.Source == "" {
		r.Source = DefaultSource
	}

	types := r.ProjectTypes[:0]
	for _, pt := range r.ProjectTypes {
		if pt = strings.TrimSpace(pt); pt != "" {
			types = append(types, pt)
		}
	}
	r.ProjectTypes = types
}
