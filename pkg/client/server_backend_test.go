package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keystone-server/internal/handler"
	"keystone-server/internal/repository"
	"keystone-server/internal/service"
	"keystone-server/pkg/client"
	"keystone-server/shared/constants"
	"keystone-server/shared/models"
)

// newLiveClient runs the full API in-process and returns a client over a
// ServerBackend pointed at it.
func newLiveClient(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	storage := repository.NewMemoryStorage(constants.DefaultDemoUserID, logger)
	apiHandler := handler.NewAPIHandler(
		service.NewStoryService(storage, logger),
		service.NewProgressService(storage, logger),
		service.NewCharacterService(storage, logger),
		service.NewUserService(storage, logger),
		logger,
	)

	router := gin.New()
	apiHandler.RegisterRoutes(router, nil)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return client.New(client.NewServerBackend(srv.URL, srv.Client()))
}

func TestServerBackend_RoundTrips(t *testing.T) {
	c := newLiveClient(t)
	ctx := context.Background()

	detail, err := c.CurrentStory(ctx)
	require.NoError(t, err)
	assert.Equal(t, constants.SeedStoryID, detail.ID)

	userChoice, err := c.SubmitChoice(ctx, constants.DefaultDemoUserID, "choice-3", constants.SeedStoryID)
	require.NoError(t, err)
	assert.Equal(t, "choice-3", userChoice.ChoiceID)

	progress, err := c.Progress(ctx, constants.DefaultDemoUserID)
	require.NoError(t, err)
	assert.Equal(t, -20, progress.TrustNetwork)
	assert.Equal(t, 35, progress.CrewLoyalty)
	assert.Equal(t, 1, progress.TotalChoices)

	chapter := 4
	saved, err := c.SaveProgress(ctx, constants.DefaultDemoUserID, models.UserProgressPatch{CurrentChapter: &chapter})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 4, saved.CurrentChapter)
	assert.Equal(t, -20, saved.TrustNetwork)
}

func TestServerBackend_NotFound(t *testing.T) {
	c := newLiveClient(t)

	_, err := c.Progress(context.Background(), "nobody")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestServerBackend_TrailingSlashBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/characters", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := client.New(client.NewServerBackend(srv.URL+"/", srv.Client()))
	characters, err := c.Characters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, characters)
}

// Server mode and static mode must accumulate identically for the same
// submissions: same tracks, same counter, same chapter.
func TestBackendParity_ChoiceAccumulation(t *testing.T) {
	live := newLiveClient(t)
	static, _, _ := newStaticClient(t)
	ctx := context.Background()

	submissions := []string{"choice-2", "choice-1", "choice-2"}
	for _, choiceID := range submissions {
		_, err := live.SubmitChoice(ctx, constants.DefaultDemoUserID, choiceID, constants.SeedStoryID)
		require.NoError(t, err)
		_, err = static.SubmitChoice(ctx, constants.DefaultDemoUserID, choiceID, constants.SeedStoryID)
		require.NoError(t, err)
	}

	fromLive, err := live.Progress(ctx, constants.DefaultDemoUserID)
	require.NoError(t, err)
	fromStatic, err := static.Progress(ctx, constants.DefaultDemoUserID)
	require.NoError(t, err)

	assert.Equal(t, fromLive.TrustNetwork, fromStatic.TrustNetwork)
	assert.Equal(t, fromLive.CouncilStanding, fromStatic.CouncilStanding)
	assert.Equal(t, fromLive.CrewLoyalty, fromStatic.CrewLoyalty)
	assert.Equal(t, fromLive.TotalChoices, fromStatic.TotalChoices)
	assert.Equal(t, fromLive.CurrentChapter, fromStatic.CurrentChapter)
}
