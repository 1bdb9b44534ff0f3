package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pyramid-ladder/internal/domain/event"
	qb "github.com/riskibarqy/pyramid-ladder/internal/platform/querybuilder"
)

type eventTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	ClubID    string    `db:"club_public_id"`
	PlayerID  string    `db:"player_id"`
	Type      string    `db:"type"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

type eventInsertModel struct {
	PublicID  string    `db:"public_id"`
	ClubID    string    `db:"club_public_id"`
	PlayerID  string    `db:"player_id"`
	Type      string    `db:"type"`
	Metadata  string    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
}

type EventRepository struct {
	db sqlx.ExtContext
}

func NewEventRepository(db sqlx.ExtContext) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Emit(ctx context.Context, item event.Event) error {
	metadata := item.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	payload, err := sonic.MarshalString(metadata)
	if err != nil {
		return fmt.Errorf("encode event metadata: %w", err)
	}

	query, args, err := qb.InsertModel("events", eventInsertModel{
		PublicID:  item.ID,
		ClubID:    item.ClubID,
		PlayerID:  item.PlayerID,
		Type:      string(item.Type),
		Metadata:  payload,
		CreatedAt: item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListByClub(ctx context.Context, clubID string, limit int) ([]event.Event, error) {
	builder := qb.Select("*").From("events").
		Where(qb.Eq("club_public_id", clubID)).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []eventTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		metadata := map[string]any{}
		if len(row.Metadata) > 0 {
			if err := sonic.Unmarshal(row.Metadata, &metadata); err != nil {
				return nil, fmt.Errorf("decode event %s metadata: %w", row.PublicID, err)
			}
		}
		out = append(out, event.Event{
			ID:        row.PublicID,
			ClubID:    row.ClubID,
			PlayerID:  row.PlayerID,
			Type:      event.Type(row.Type),
			Metadata:  metadata,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}
