package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanpilot/backend/internal/models"
)

func TestChatHistoryInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatHistoryRepo(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "chat_history"`)).
		WithArgs("msg-1", "sess-1", "user", "hello", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Insert(context.Background(), &models.ChatMessage{
		ID:        "msg-1",
		SessionID: "sess-1",
		Role:      "user",
		Message:   "hello",
		Timestamp: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChatHistoryListBySession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewChatHistoryRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "chat_history" WHERE session_id = $1 ORDER BY timestamp ASC LIMIT $2`)).
		WithArgs("sess-1", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "role", "message", "timestamp"}).
			AddRow("msg-1", "sess-1", "assistant", "hi", now))

	msgs, err := repo.ListBySession(context.Background(), "sess-1", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "assistant", msgs[0].Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
