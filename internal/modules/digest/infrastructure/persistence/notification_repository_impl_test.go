package persistence

import (
	"context"
	"testing"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notification(id, recipient, title string) *digest.Notification {
	return &digest.Notification{
		ID:          id,
		RecipientID: recipient,
		DedupeKey:   digest.DedupeKey("2026-01-15"),
		Title:       title,
		Kind:        digest.NotificationKind,
		CreatedAt:   time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC),
	}
}

func TestNotificationInsertIgnoreKeepsExistingRow(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.InsertIgnore(ctx, notification("n1", "u1", "first"))
	require.NoError(t, err)
	assert.True(t, created)

	readAt := time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)
	ok, err := repo.MarkRead(ctx, "u1", "n1", readAt)
	require.NoError(t, err)
	assert.True(t, ok)

	created, err = repo.InsertIgnore(ctx, notification("n2", "u1", "second"))
	require.NoError(t, err)
	assert.False(t, created)

	list, err := repo.ListByRecipient(ctx, "u1", false, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Title)
	assert.True(t, list[0].IsRead)

	created, err = repo.InsertIgnore(ctx, notification("n3", "u2", "first"))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNotificationMarkReadScopedToRecipient(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()
	_, err := repo.InsertIgnore(ctx, notification("n1", "u1", "digest"))
	require.NoError(t, err)

	ok, err := repo.MarkRead(ctx, "u2", "n1", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	unread, err := repo.ListByRecipient(ctx, "u1", true, 10)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}
