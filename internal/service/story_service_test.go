package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keystone-server/internal/repository"
	"keystone-server/shared/constants"
)

func TestGetCurrentStory_ReturnsActiveWithVotes(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryStorage(constants.DefaultDemoUserID, zap.NewNop())
	svc := NewStoryService(storage, zap.NewNop())

	detail, err := svc.GetCurrentStory(ctx)
	require.NoError(t, err)

	assert.Equal(t, constants.SeedStoryID, detail.ID)
	assert.Equal(t, "Chapter 3: The Signal", detail.Title)
	require.Len(t, detail.Choices, 3)

	assert.Equal(t, 967, detail.Choices[0].VoteCount)
	assert.Equal(t, 34, detail.Choices[0].Percentage)
	assert.Equal(t, 1281, detail.Choices[1].VoteCount)
	assert.Equal(t, 45, detail.Choices[1].Percentage)
	assert.Equal(t, 599, detail.Choices[2].VoteCount)
	assert.Equal(t, 21, detail.Choices[2].Percentage)
}

func TestGetCurrentStory_StableAcrossReads(t *testing.T) {
	ctx := context.Background()
	storage := repository.NewMemoryStorage(constants.DefaultDemoUserID, zap.NewNop())
	svc := NewStoryService(storage, zap.NewNop())

	first, err := svc.GetCurrentStory(ctx)
	require.NoError(t, err)
	second, err := svc.GetCurrentStory(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "reads without mutations are idempotent")
}
