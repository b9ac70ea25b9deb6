package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxAPI interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db pgxAPI
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: pool}
}

func newPostgresRepositoryWithDB(db pgxAPI) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new row with status "new" and a server-side timestamp.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	req.Normalize()

	id := uuid.New()
	query := `
		INSERT INTO leads (id, name, email, phone, address, postal_code, project_types, message, source, utm_source, utm_campaign, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Address,
		req.PostalCode,
		[]string(req.ProjectTypes),
		req.Message,
		req.Source,
		req.UTMSource,
		req.UTMCampaign,
		string(StatusNew),
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:           id.String(),
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
		CreatedAt:    createdAt,
	}, nil
}

const leadColumns = `id, name, email, phone, address, postal_code, project_types, message, source, utm_source, utm_campaign, status, created_at`

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	row := r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns leads ordered by creation time, optionally filtered on an
// exact status match. Ties fall back to id so the order stays stable.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	direction := "DESC"
	if filter.Sort == SortAsc {
		direction = "ASC"
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []any{}
	if !filter.matchesAll() {
		query += ` WHERE status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at ` + direction + `, id ` + direction

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

// UpdateStatus performs a single-field update on status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	tag, err := r.db.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("leads: update status failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*Lead, error) {
	var lead Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Address,
		&lead.PostalCode,
		&lead.ProjectTypes,
		&lead.Message,
		&lead.Source,
		&lead.UTMSource,
		&lead.UTMCampaign,
		&lead.Status,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lead.ProjectTypes == nil {
		lead.ProjectTypes = []string{}
	}
	return &lead, nil
}

var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
