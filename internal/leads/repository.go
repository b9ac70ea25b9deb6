package leads

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SortOrder controls chronological ordering of lead listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListFilter narrows and orders a lead listing. An empty or "all" Status
// matches every record. Zero-value Sort means newest first.
type ListFilter struct {
	Status string
	Sort   SortOrder
}

func (f ListFilter) matchesAll() bool {
	return f.Status == "" || f.Status == "all"
}

// Repository defines the interface for lead storage
type Repository interface {
	Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error)
	GetByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter ListFilter) ([]*Lead, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// InMemoryRepository is a Repository backed by a map, used in tests and
// local development without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
	order []string // insertion order, the tie-break for equal timestamps
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{leads: make(map[string]*Lead)}
}

// Create stores a new lead with a fresh ID and server timestamp.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	req.Normalize()

	lead := &Lead{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		ProjectTypes: append([]string(nil), req.ProjectTypes...),
		Message:      req.Message,
		Source:       req.Source,
		UTMSource:    req.UTMSource,
		UTMCampaign:  req.UTMCampaign,
		Status:       StatusNew,
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.order = append(r.order, lead.ID)
	r.mu.Unlock()

	return copyLead(lead), nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return copyLead(lead), nil
}

// List returns leads matching the filter, ordered by creation time.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	r.mu.RLock()
	out := make([]*Lead, 0, len(r.order))
	for _, id := range r.order {
		lead := r.leads[id]
		if filter.matchesAll() || string(lead.Status) == filter.Status {
			out = append(out, copyLead(lead))
		}
	}
	r.mu.RUnlock()

	desc := filter.Sort != SortAsc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus sets the status of an existing lead, leaving every other
// field untouched.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok {
		return ErrLeadNotFound
	}
	lead.Status = status
	return nil
}

func copyLead(l *Lead) *Lead {
	c := *l
	c.ProjectTypes = append([]string(nil), l.ProjectTypes...)
	return &c
}
