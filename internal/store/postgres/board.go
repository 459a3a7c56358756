package postgres

import (
	"context"
	"errors"
	"time"

	"gms/bay-service/internal/store"

	"github.com/jackc/pgx/v5"
)

// Board queries back the realtime bay board. They live on the concrete store
// rather than the interface because only the board binary uses them.

func (s *Store) GetBoardOffset(ctx context.Context, consumer string) (time.Time, error) {
	var last time.Time
	row := s.pool.QueryRow(ctx, `
		SELECT last_event_at FROM board_offsets WHERE consumer = $1
	`, consumer)
	if err := row.Scan(&last); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return last, nil
}

func (s *Store) UpdateBoardOffset(ctx context.Context, consumer string, last time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO board_offsets (consumer, last_event_at, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (consumer) DO UPDATE SET last_event_at = EXCLUDED.last_event_at, updated_at = now()
	`, consumer, last)
	return err
}

// ListBoardEvents pages the outbox across all shops in commit order.
func (s *Store) ListBoardEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT event_id, shop_id, type, payload, created_at
		FROM outbox_events
		WHERE created_at > $1
		ORDER BY created_at ASC
		LIMIT $2
	`, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []store.OutboxEvent
	for rows.Next() {
		var event store.OutboxEvent
		if err := rows.Scan(&event.EventID, &event.ShopID, &event.Type, &event.Payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// CleanupOutbox drops events older than the retention window.
func (s *Store) CleanupOutbox(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM outbox_events WHERE created_at < $1
	`, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
