package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/hostfolio/property-dashboard-api/infrastructure/database/postgres"
	_ "github.com/lib/pq"
)

const metricPostLogTable = "metric_post_log"

// MetricPost is one locally-recorded successful post to the spreadsheet
// store. The sync service uses the latest entry to enforce its cooldown.
type MetricPost struct {
	ID              int       `json:"id"`
	PostedAt        time.Time `json:"posted_at"`
	ActualFormatted string    `json:"actual_formatted"`
	TotalFormatted  string    `json:"total_formatted"`
}

type MetricPostLogRepository interface {
	RecordPost(post *MetricPost) error
	LastPost() (*MetricPost, error)
}

type metricPostLogRepository struct {
	conn *postgres.Connection
}

func NewMetricPostLogRepository(conn *postgres.Connection) MetricPostLogRepository {
	return &metricPostLogRepository{
		conn: conn,
	}
}

func (r *metricPostLogRepository) RecordPost(post *MetricPost) error {
	queryBuilder := squirrel.
		Insert(metricPostLogTable).
		Columns("posted_at", "actual_formatted", "total_formatted").
		Values(post.PostedAt, post.ActualFormatted, post.TotalFormatted).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	return r.conn.DB.QueryRow(querySQL, queryArgs...).Scan(&post.ID)
}

// LastPost returns the most recent recorded post, or nil when none exists.
func (r *metricPostLogRepository) LastPost() (*MetricPost, error) {
	queryBuilder := squirrel.
		Select("id", "posted_at", "actual_formatted", "total_formatted").
		From(metricPostLogTable).
		OrderBy("posted_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	querySQL, queryArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	post := &MetricPost{}
	err = r.conn.DB.QueryRow(querySQL, queryArgs...).Scan(
		&post.ID,
		&post.PostedAt,
		&post.ActualFormatted,
		&post.TotalFormatted,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return post, nil
}
