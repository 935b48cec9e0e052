package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Per-user collections (wallets, notifications, security profile) are
// stored as whole JSONB documents in user_records, one row per
// (username, kind). Reads and writes always move the full document,
// mirroring how the collections are consumed: list-at-once, replace-at-
// once. Collection kinds stored in user_records.
const (
	kindWallets       = "wallets"
	kindNotifications = "notifications"
	kindProfile       = "profile"
)

// getDoc loads the raw document for a (username, kind) pair. Returns
// nil, nil when no row exists yet.
func getDoc(ctx context.Context, pool Pool, username, kind string) ([]byte, error) {
	query := `SELECT doc FROM user_records WHERE username = $1 AND kind = $2`

	var doc []byte
	err := pool.QueryRow(ctx, query, username, kind).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s record: %w", kind, err)
	}
	return doc, nil
}

// putDoc upserts the full document for a (username, kind) pair.
func putDoc(ctx context.Context, pool Pool, username, kind string, doc []byte) error {
	query := `INSERT INTO user_records (username, kind, doc, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (username, kind) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	_, err := pool.Exec(ctx, query, username, kind, doc)
	if err != nil {
		return fmt.Errorf("put %s record: %w", kind, err)
	}
	return nil
}
