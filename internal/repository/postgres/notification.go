package postgres

import (
	"context"
	"encoding/json"

	"greenloop-backend/internal/domain"
	"greenloop-backend/internal/repository"
)

type notificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	attrs, err := json.Marshal(note.Attributes)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (recipient_id, recipient_type, title, message, attributes, read, created_on)
	          VALUES ($1, $2, $3, $4, $5, FALSE, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		note.RecipientID, note.RecipientType, note.Title, note.Message, attrs,
	).Scan(&note.ID, &note.CreatedOn)
}

func (r *notificationRepository) List(ctx context.Context, recipientID int64, recipientType domain.WalletType, limit, offset int32) ([]domain.Notification, int32, error) {
	query := `SELECT id, recipient_id, recipient_type, title, message, attributes, read, created_on
	          FROM notifications WHERE recipient_id = $1 AND recipient_type = $2
	          ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, recipientID, recipientType, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.RecipientType, &n.Title, &n.Message, &attrs, &n.Read, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM notifications WHERE recipient_id = $1 AND recipient_type = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, recipientID, recipientType).Scan(&count); err != nil {
		return nil, 0, err
	}
	return notes, count, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, recipientID int64) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
