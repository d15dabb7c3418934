package service

import (
	"context"
	"testing"

	"FleetOps/internal/modules/digest/domain/digest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMarkReadOwnOnly(t *testing.T) {
	repo := &memNotificationRepo{}
	_, _ = repo.InsertIgnore(context.Background(), &digest.Notification{ID: "n1", RecipientID: "u1", DedupeKey: "trend-digest:2026-01-15"})
	svc := NewNotificationService(repo)

	err := svc.MarkRead(context.Background(), "u2", "n1")
	require.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkRead(context.Background(), "u1", "n1"))
	unread, err := svc.ListMine(context.Background(), "u1", true, 0)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := svc.ListMine(context.Background(), "u1", false, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
	assert.NotNil(t, all[0].ReadAt)
}
