package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hostfolio/property-dashboard-api/infrastructure/database/postgres"
	"github.com/hostfolio/property-dashboard-api/internal/domain"
	_ "github.com/lib/pq"
)

const dailySnapshotTable = "daily_snapshot"

// snapshotRowID pins the snapshot to a single row; the table only ever
// holds the current day's accumulator.
const snapshotRowID = 1

// SnapshotRepository is the injected storage behind the aggregation
// engine's read-modify-write of the daily snapshot.
type SnapshotRepository interface {
	LoadSnapshot() (*domain.DailySnapshot, error)
	SaveSnapshot(snapshot *domain.DailySnapshot) error
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

// LoadSnapshot returns the persisted snapshot, or a zero-valued one when
// no row exists yet.
func (r *snapshotRepository) LoadSnapshot() (*domain.DailySnapshot, error) {
	queryBuilder := squirrel.
		Select("last_updated_date", "total_revenue", "category_availability", "updated_at").
		From(dailySnapshotTable).
		Where(squirrel.Eq{"id": snapshotRowID}).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	snapshot := &domain.DailySnapshot{
		CategoryAvailability: map[domain.ListingCategory]domain.CategoryAvailability{},
	}

	var categoriesJSON []byte
	err = r.conn.DB.QueryRow(querySQL, queryArgs...).Scan(
		&snapshot.LastUpdatedDate,
		&snapshot.TotalRevenue,
		&categoriesJSON,
		&snapshot.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return snapshot, nil
	}
	if err != nil {
		return nil, err
	}

	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &snapshot.CategoryAvailability); err != nil {
			return nil, err
		}
	}

	return snapshot, nil
}

// SaveSnapshot upserts the single snapshot row.
func (r *snapshotRepository) SaveSnapshot(snapshot *domain.DailySnapshot) error {
	categoriesJSON, err := json.Marshal(snapshot.CategoryAvailability)
	if err != nil {
		return err
	}

	queryBuilder := squirrel.
		Insert(dailySnapshotTable).
		Columns("id", "last_updated_date", "total_revenue", "category_availability", "updated_at").
		Values(snapshotRowID, snapshot.LastUpdatedDate, snapshot.TotalRevenue, categoriesJSON, time.Now()).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			last_updated_date = EXCLUDED.last_updated_date,
			total_revenue = EXCLUDED.total_revenue,
			category_availability = EXCLUDED.category_availability,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.DB.Exec(querySQL, queryArgs...)
	return err
}
