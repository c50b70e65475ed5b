package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

func TestMemoryChatRepository(t *testing.T) {
	ctx := tenant.SetTenantIDContext(context.Background(), "tenant-001")
	repo := NewMemoryChatRepository(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveMessage(ctx, &chat.Entry{UserID: "U001", Role: chat.RoleUser, Content: fmt.Sprint(i)}))
	}

	n, err := repo.CountUserMessages(ctx, "U001")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	h, err := repo.GetUserHistory(ctx, "U001", 2, 0)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "4", h[0].Content)
	assert.Equal(t, "3", h[1].Content)
	assert.NotEmpty(t, h[0].ID)

	h, _ = repo.GetUserHistory(ctx, "U001", 10, 2)
	require.Len(t, h, 1)
	assert.Equal(t, "2", h[0].Content)

	other := tenant.SetTenantIDContext(context.Background(), "tenant-002")
	n, _ = repo.CountUserMessages(other, "U001")
	assert.Zero(t, n)

	require.NoError(t, repo.DeleteUserHistory(ctx, "U001"))
	n, _ = repo.CountUserMessages(ctx, "U001")
	assert.Zero(t, n)
}
