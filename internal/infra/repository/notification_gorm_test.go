package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_UpsertKeepsToken(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	notifications := NewNotificationGormRepository(gdb)

	first := model.Notification{Email: "amy@example.com", Token: "token-1", Newsletter: true, Marketing: true}
	require.NoError(t, notifications.Upsert(ctx, &first))
	require.NotEmpty(t, first.ID)

	again := model.Notification{Email: "amy@example.com", Token: "token-2", Newsletter: true}
	require.NoError(t, notifications.Upsert(ctx, &again))
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "token-1", again.Token)
	assert.True(t, again.Marketing)

	stored, err := notifications.FindByEmail(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "token-1", stored.Token)
	assert.True(t, stored.Newsletter)
}
