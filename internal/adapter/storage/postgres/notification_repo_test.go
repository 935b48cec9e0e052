package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"tron-wallet-service/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotification(id string) domain.NotificationRecord {
	return domain.NotificationRecord{
		ID:        id,
		Title:     "Received TRX",
		Message:   "Wallet Tron Wallet 1 received 10.000000 TRX. New balance: 110.000000 TRX.",
		Kind:      domain.NotificationKindSuccess,
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func notifDocJSON(t *testing.T, records []domain.NotificationRecord) []byte {
	t.Helper()
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	return raw
}

func expectNotifDoc(mock pgxmock.PgxPoolIface, username string, doc []byte) {
	rows := pgxmock.NewRows([]string{"doc"})
	if doc != nil {
		rows.AddRow(doc)
	}
	mock.ExpectQuery("SELECT doc FROM user_records").
		WithArgs(username, kindNotifications).
		WillReturnRows(rows)
}

func TestNotificationRepo_Append_PrependsNewest(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock, zerolog.Nop())
	older := newTestNotification("n1")
	newer := newTestNotification("n2")

	expectNotifDoc(mock, "alice", notifDocJSON(t, []domain.NotificationRecord{older}))
	mock.ExpectExec("INSERT INTO user_records").
		WithArgs("alice", kindNotifications, notifDocJSON(t, []domain.NotificationRecord{newer, older})).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Append(context.Background(), "alice", newer)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_Append_EvictsOldestPastCap(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock, zerolog.Nop())

	full := make([]domain.NotificationRecord, domain.MaxNotifications)
	for i := range full {
		full[i] = newTestNotification(fmt.Sprintf("n%d", i))
	}
	incoming := newTestNotification("fresh")

	expectNotifDoc(mock, "alice", notifDocJSON(t, full))
	mock.ExpectExec("INSERT INTO user_records").
		WithArgs("alice", kindNotifications, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Append(context.Background(), "alice", incoming)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_List_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock, zerolog.Nop())
	expectNotifDoc(mock, "alice", nil)

	records, err := repo.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_MarkAllRead(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock, zerolog.Nop())
	records := []domain.NotificationRecord{newTestNotification("n1"), newTestNotification("n2")}

	read := make([]domain.NotificationRecord, len(records))
	copy(read, records)
	for i := range read {
		read[i].Read = true
	}

	expectNotifDoc(mock, "alice", notifDocJSON(t, records))
	mock.ExpectExec("INSERT INTO user_records").
		WithArgs("alice", kindNotifications, notifDocJSON(t, read)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.MarkAllRead(context.Background(), "alice")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepo_MarkAllRead_EmptyIsNoWrite(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewNotificationRepo(mock, zerolog.Nop())
	expectNotifDoc(mock, "alice", nil)

	err = repo.MarkAllRead(context.Background(), "alice")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
