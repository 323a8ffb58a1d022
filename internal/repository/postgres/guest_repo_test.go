package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

var guestRowColumns = []string{
	"id", "event_id", "name", "email", "phone", "rsvp_status", "plus_one", "plus_one_name",
	"dietary_restrictions", "notes", "table_number", "created_at", "updated_at",
}

func TestGuestRepository_Update_Table(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	table := 4

	tests := []struct {
		name      string
		patch     domain.GuestPatch
		sql       string
		args      []driver.Value
		tableCell any
		wantTable *int
	}{
		{
			name:      "assign table",
			patch:     domain.GuestPatch{TableNumber: &table},
			sql:       `UPDATE guests SET updated_at = NOW\(\), table_number = \$1 WHERE id = \$2`,
			args:      []driver.Value{4, "guest-1"},
			tableCell: int64(4),
			wantTable: &table,
		},
		{
			name:      "clear table",
			patch:     domain.GuestPatch{ClearTable: true},
			sql:       `UPDATE guests SET updated_at = NOW\(\), table_number = NULL WHERE id = \$1`,
			args:      []driver.Value{"guest-1"},
			tableCell: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(tt.sql).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(guestRowColumns).AddRow(
					"guest-1", "event-1", "Cleo", "", "", "attending", false, "", "", "", tt.tableCell, now, now))

			g, err := NewGuestRepository(db).Update(ctx, "guest-1", tt.patch)
			require.NoError(t, err)
			require.Equal(t, tt.wantTable, g.TableNumber)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGuestRepository_ListByEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("ordered rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM guests WHERE event_id = \$1 ORDER BY name ASC`).
			WithArgs("event-1").
			WillReturnRows(sqlmock.NewRows(guestRowColumns).
				AddRow("g-1", "event-1", "Ana", "", "", "attending", true, "Ben", "", "", nil, now, now).
				AddRow("g-2", "event-1", "Cleo", "", "", "pending", false, "", "vegan", "", int64(2), now, now))

		guests, err := NewGuestRepository(db).ListByEvent(ctx, "event-1")
		require.NoError(t, err)
		require.Len(t, guests, 2)
		require.True(t, guests[0].HasNamedPlusOne())
		require.Nil(t, guests[0].TableNumber)
		require.Equal(t, 2, *guests[1].TableNumber)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM guests`).WillReturnError(sql.ErrConnDone)
		_, err = NewGuestRepository(db).ListByEvent(ctx, "event-1")
		require.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestGuestRepository_ClearTablesByEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE guests SET table_number = NULL`).
		WithArgs("event-1").
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := NewGuestRepository(db).ClearTablesByEvent(context.Background(), "event-1")
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
