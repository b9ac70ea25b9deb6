package leads

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(pgxmock.AnyArg(), "Jean Dupont", "jean@example.com", "", "", "69001",
			[]string{"Panneaux solaires"}, "", "landing-econova", "", "", "new").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	lead, err := repo.Create(context.Background(), &CreateLeadRequest{
		Name:         "Jean Dupont",
		Email:        "jean@example.com",
		PostalCode:   "69001",
		ProjectTypes: StringList{"Panneaux solaires"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if lead.Status != StatusNew {
		t.Errorf("expected status new, got %s", lead.Status)
	}
	if !lead.CreatedAt.Equal(now) {
		t.Errorf("expected server-assigned timestamp %v, got %v", now, lead.CreatedAt)
	}
	if lead.Source != DefaultSource {
		t.Errorf("expected default source, got %s", lead.Source)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_ListWithStatusFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "phone", "address", "postal_code", "project_types",
		"message", "source", "utm_source", "utm_campaign", "status", "created_at",
	}).AddRow("id-1", "Jean", "jean@example.com", "", "", "", []string{"Isolation"},
		"", "landing-isolation", "", "", "qualified", now)

	mock.ExpectQuery("SELECT (.+) FROM leads WHERE status = \\$1 ORDER BY created_at ASC").
		WithArgs("qualified").
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), ListFilter{Status: "qualified", Sort: SortAsc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].Status != StatusQualified {
		t.Fatalf("unexpected result: %+v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_ListAllDefaultsToDescending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)

	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "phone", "address", "postal_code", "project_types",
		"message", "source", "utm_source", "utm_campaign", "status", "created_at",
	})

	mock.ExpectQuery("SELECT (.+) FROM leads ORDER BY created_at DESC").WillReturnRows(rows)

	out, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithDB(mock)

	mock.ExpectExec("UPDATE leads SET status").
		WithArgs("contacted", "id-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.UpdateStatus(context.Background(), "id-1", StatusContacted); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	mock.ExpectExec("UPDATE leads SET status").
		WithArgs("contacted", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdateStatus(context.Background(), "missing", StatusContacted); err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}

	if err := repo.UpdateStatus(context.Background(), "id-1", "bogus"); err != ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
