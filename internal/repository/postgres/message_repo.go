package postgres

import (
	"context"
	"database/sql"

	"weddingplanner/internal/domain"
)

const messageColumns = `id, sender_id, receiver_id, event_id, content, is_read, created_at`

type messageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) domain.MessageRepository {
	return &messageRepository{DB: db}
}

func scanMessage(s rowScanner) (*domain.Message, error) {
	m := &domain.Message{}
	var eventID sql.NullString
	if err := s.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &eventID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	if eventID.Valid {
		m.EventID = &eventID.String
	}
	return m, nil
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	var eventID sql.NullString
	if m.EventID != nil {
		eventID = sql.NullString{String: *m.EventID, Valid: true}
	}
	query := `
		INSERT INTO messages (sender_id, receiver_id, event_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, m.SenderID, m.ReceiverID, eventID, m.Content, m.IsRead, m.CreatedAt).Scan(&m.ID)
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	m, err := scanMessage(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// ListForUser returns every message the user sent or received, newest first.
func (r *messageRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	return r.list(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
	`, userID)
}

// ListBetween returns the conversation between two users, oldest first.
func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID string) ([]*domain.Message, error) {
	return r.list(ctx, `
		SELECT `+messageColumns+`
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
	`, userID, otherID)
}

func (r *messageRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Message, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := make([]*domain.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) MarkRead(ctx context.Context, id string) (*domain.Message, error) {
	query := `
		UPDATE messages SET is_read = TRUE
		WHERE id = $1
		RETURNING ` + messageColumns
	m, err := scanMessage(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read`, userID).Scan(&n)
	return n, err
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, "messages", id)
}
