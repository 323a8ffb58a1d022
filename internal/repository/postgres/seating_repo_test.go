package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

var seatingRowColumns = []string{"id", "event_id", "name", "layout", "tables", "created_at", "updated_at"}

func TestSeatingRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	plan := &domain.SeatingPlan{
		EventID:   "event-1",
		Name:      "Reception",
		Tables:    []domain.Table{{Number: 1, Seats: 8, Shape: "round", Position: domain.TablePosition{X: 10, Y: 20}}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	tablesJSON := `[{"number":1,"seats":8,"shape":"round","position":{"x":10,"y":20}}]`

	mock.ExpectQuery(`INSERT INTO seating_plans`).
		WithArgs("event-1", "Reception", "", tablesJSON, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("plan-1"))
	mock.ExpectQuery(`FROM seating_plans WHERE id`).
		WithArgs("plan-1").
		WillReturnRows(sqlmock.NewRows(seatingRowColumns).AddRow("plan-1", "event-1", "Reception", "", []byte(tablesJSON), now, now))

	repo := NewSeatingRepository(db)
	require.NoError(t, repo.Create(ctx, plan))
	require.Equal(t, "plan-1", plan.ID)

	got, err := repo.GetByID(ctx, "plan-1")
	require.NoError(t, err)
	require.Equal(t, plan.Tables, got.Tables)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatingRepository_GetByID_NullTables(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM seating_plans WHERE id`).
		WithArgs("plan-1").
		WillReturnRows(sqlmock.NewRows(seatingRowColumns).AddRow("plan-1", "event-1", "Empty", "", nil, now, now))

	got, err := NewSeatingRepository(db).GetByID(context.Background(), "plan-1")
	require.NoError(t, err)
	require.NotNil(t, got.Tables)
	require.Empty(t, got.Tables)
}
