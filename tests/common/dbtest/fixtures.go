//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/pkg/civil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike accepts a pool, a connection or a transaction.
type DBLike = db.DBTX

// Reference caravans present after every ResetDB.
const (
	SwiftSlug         = "the-swift"
	SwiftWeekendPence = 12000
	SwiftWeeklyPence  = 50000

	BaileySlug         = "the-bailey"
	BaileyWeekendPence = 15000
	BaileyWeeklyPence  = 60000
)

func CaravanID(t *testing.T, db DBLike, slug string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM caravans WHERE slug = $1", slug).Scan(&id)
	require.NoError(t, err, "caravan %s not seeded", slug)
	return id
}

// BlockDates marks days as taken outside this system.
func BlockDates(t *testing.T, db DBLike, caravanID uuid.UUID, days ...civil.Date) {
	t.Helper()

	ctx := context.Background()
	for _, d := range days {
		_, err := db.Exec(ctx,
			"INSERT INTO booked_dates (caravan_id, day) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			caravanID, d.String())
		require.NoError(t, err)
	}
}

func BookedDays(t *testing.T, db DBLike, caravanID uuid.UUID) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT to_char(day, 'YYYY-MM-DD') FROM booked_dates WHERE caravan_id = $1 ORDER BY day", caravanID)
	require.NoError(t, err)
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		require.NoError(t, rows.Scan(&d))
		days = append(days, d)
	}
	require.NoError(t, rows.Err())
	return days
}

func CountBookings(t *testing.T, db DBLike, caravanID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings WHERE caravan_id = $1", caravanID).Scan(&n)
	require.NoError(t, err)
	return n
}

// CountNotificationJobs counts jobs for one event in one status.
func CountNotificationJobs(t *testing.T, db DBLike, event, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1 AND status = $2", event, status).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO caravans (slug, name, description, short_description, sleeps, berths,
		                      images, features, pet_friendly, weekend_total_pence, weekly_total_pence)
		VALUES
		    ($1, 'The Swift', 'A six-berth static caravan a short walk from the beach.', 'Six berth, sea views',
		     6, 3, ARRAY['/images/swift-1.jpg'], ARRAY['Central heating'], true, $2, $3),
		    ($4, 'The Bailey', 'A quiet four-berth tucked behind the dunes.', 'Four berth, quiet pitch',
		     4, 2, ARRAY['/images/bailey-1.jpg'], ARRAY['Decking'], false, $5, $6)
		ON CONFLICT (slug) DO NOTHING;
	`, SwiftSlug, SwiftWeekendPence, SwiftWeeklyPence, BaileySlug, BaileyWeekendPence, BaileyWeeklyPence)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
