package postgres

import (
	"context"
	"encoding/json"

	"tron-wallet-service/internal/core/domain"

	"github.com/rs/zerolog"
)

// NotificationRepo implements ports.NotificationRepository on the
// user_records store. The list is kept newest-first and capped at
// domain.MaxNotifications.
type NotificationRepo struct {
	pool Pool
	log  zerolog.Logger
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(pool Pool, log zerolog.Logger) *NotificationRepo {
	return &NotificationRepo{pool: pool, log: log}
}

func (r *NotificationRepo) load(ctx context.Context, username string) ([]domain.NotificationRecord, error) {
	raw, err := getDoc(ctx, r.pool, username, kindNotifications)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var records []domain.NotificationRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		r.log.Error().Err(err).Str("user", username).Msg("corrupt notification document, treating as empty")
		return nil, nil
	}
	return records, nil
}

func (r *NotificationRepo) store(ctx context.Context, username string, records []domain.NotificationRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return putDoc(ctx, r.pool, username, kindNotifications, raw)
}

// List returns the user's notifications, newest first.
func (r *NotificationRepo) List(ctx context.Context, username string) ([]domain.NotificationRecord, error) {
	return r.load(ctx, username)
}

// Append prepends a notification, evicting the oldest entry past the cap.
func (r *NotificationRepo) Append(ctx context.Context, username string, record domain.NotificationRecord) error {
	records, err := r.load(ctx, username)
	if err != nil {
		return err
	}

	records = append([]domain.NotificationRecord{record}, records...)
	if len(records) > domain.MaxNotifications {
		records = records[:domain.MaxNotifications]
	}

	return r.store(ctx, username, records)
}

// MarkAllRead flags every notification as read in one write.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, username string) error {
	records, err := r.load(ctx, username)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for i := range records {
		records[i].Read = true
	}
	return r.store(ctx, username, records)
}
