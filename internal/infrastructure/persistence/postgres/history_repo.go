// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"poem-tab-api/internal/domain/entity"
	"poem-tab-api/internal/domain/repository"
)

// HistoryRepository 取诗历史仓储实现
type HistoryRepository struct {
	client *Client
}

var _ repository.FetchHistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository 创建历史仓储
func NewHistoryRepository(client *Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

// Record 记录一次成功下发
func (r *HistoryRepository) Record(ctx context.Context, rec *entity.FetchRecord) error {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.Record")
	defer span.End()

	db, err := r.client.SqlDB()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO fetch_records (title, author, language, source, route, tags, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err = db.QueryRowContext(ctx, query,
		rec.Title, rec.Author, string(rec.Language), rec.Source, string(rec.Route),
		pq.Array(rec.Tags), rec.FetchedAt,
	).Scan(&rec.ID)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to record fetch: %w", err)
	}

	return nil
}

// ListRecent 按时间倒序列出最近的记录
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]*entity.FetchRecord, error) {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.ListRecent")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	db, err := r.client.SqlDB()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, author, language, source, route, tags, fetched_at
		FROM fetch_records
		ORDER BY fetched_at DESC
		LIMIT $1
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list fetch records: %w", err)
	}
	defer rows.Close()

	var records []*entity.FetchRecord
	for rows.Next() {
		var rec entity.FetchRecord
		var tags pq.StringArray
		var language, route string

		err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Author, &language, &rec.Source, &route, &tags, &rec.FetchedAt,
		)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}

		rec.Language = entity.Language(language)
		rec.Route = entity.FetchRoute(route)
		rec.Tags = tags
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return records, nil
}
