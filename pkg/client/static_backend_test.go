package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"keystone-server/internal/export"
	"keystone-server/internal/repository"
	"keystone-server/internal/service"
	"keystone-server/pkg/client"
	"keystone-server/shared/constants"
	"keystone-server/shared/models"
)

// exportSeed renders the seed data into dir, the same tree the export
// CLI produces.
func exportSeed(t *testing.T, dir string) {
	t.Helper()
	logger := zap.NewNop()
	storage := repository.NewMemoryStorage(constants.DefaultDemoUserID, logger)
	exporter := export.NewExporter(
		service.NewStoryService(storage, logger),
		service.NewProgressService(storage, logger),
		service.NewCharacterService(storage, logger),
		constants.DefaultDemoUserID,
		logger,
	)
	require.NoError(t, exporter.Export(context.Background(), dir))
}

// newStaticClient serves an exported tree over HTTP and returns a client
// in static mode backed by an in-memory local store.
func newStaticClient(t *testing.T) (*client.Client, *client.MemStore, string) {
	t.Helper()
	dir := t.TempDir()
	exportSeed(t, dir)

	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	t.Cleanup(srv.Close)

	store := client.NewMemStore()
	backend := client.NewStaticBackend(srv.URL, store, srv.Client(), zap.NewNop())
	return client.New(backend), store, dir
}

func TestStaticBackend_ReadsExportedSnapshots(t *testing.T) {
	c, _, _ := newStaticClient(t)
	ctx := context.Background()

	detail, err := c.CurrentStory(ctx)
	require.NoError(t, err)
	assert.Equal(t, constants.SeedStoryID, detail.ID)
	require.Len(t, detail.Choices, 3)
	assert.Equal(t, 1281, detail.Choices[1].VoteCount)

	characters, err := c.Characters(ctx)
	require.NoError(t, err)
	require.Len(t, characters, 4)

	one, err := c.Character(ctx, characters[0].ID)
	require.NoError(t, err)
	assert.Equal(t, characters[0].Name, one.Name)

	log, err := c.StoryChoices(ctx, constants.DefaultDemoUserID, constants.SeedStoryID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestStaticBackend_ProgressBaseline(t *testing.T) {
	c, _, _ := newStaticClient(t)

	progress, err := c.Progress(context.Background(), constants.DefaultDemoUserID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.CurrentChapter)
	assert.Equal(t, 0, progress.TotalChoices)
	assert.NotNil(t, progress.CompletedStories)
}

func TestStaticBackend_ProgressDegradesToZeros(t *testing.T) {
	// No exported baseline for this user: the read still succeeds with
	// zero totals and the default chapter.
	c, _, _ := newStaticClient(t)

	progress, err := c.Progress(context.Background(), "stranger-1")
	require.NoError(t, err)
	assert.Equal(t, "stranger-1", progress.UserID)
	assert.Equal(t, 3, progress.CurrentChapter)
	assert.Equal(t, 0, progress.TrustNetwork)
	assert.Equal(t, 0, progress.TotalChoices)
}

func TestStaticBackend_SubmitChoiceAccumulates(t *testing.T) {
	c, _, dir := newStaticClient(t)
	ctx := context.Background()

	baselineBefore, err := os.ReadFile(filepath.Join(dir, "api", "users", constants.DefaultDemoUserID, "progress.json"))
	require.NoError(t, err)

	// choice-1 carries {+50, -75, +25}. Submitting it twice doubles the
	// totals, same as two round trips against the live server.
	for i := 0; i < 2; i++ {
		userChoice, err := c.SubmitChoice(ctx, constants.DefaultDemoUserID, "choice-1", constants.SeedStoryID)
		require.NoError(t, err)
		assert.NotEmpty(t, userChoice.ID)
		assert.Equal(t, "choice-1", userChoice.ChoiceID)
	}

	progress, err := c.Progress(ctx, constants.DefaultDemoUserID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.TrustNetwork)
	assert.Equal(t, -150, progress.CouncilStanding)
	assert.Equal(t, 50, progress.CrewLoyalty)
	assert.Equal(t, 2, progress.TotalChoices)
	assert.Equal(t, 3, progress.CurrentChapter)

	// The exported baseline on disk is untouched; all mutation lives in
	// the local store.
	baselineAfter, err := os.ReadFile(filepath.Join(dir, "api", "users", constants.DefaultDemoUserID, "progress.json"))
	require.NoError(t, err)
	assert.Equal(t, baselineBefore, baselineAfter)
}

func TestStaticBackend_UnknownChoiceRejected(t *testing.T) {
	c, _, _ := newStaticClient(t)
	ctx := context.Background()

	_, err := c.SubmitChoice(ctx, constants.DefaultDemoUserID, "choice-404", constants.SeedStoryID)
	require.ErrorIs(t, err, models.ErrChoiceNotFound)

	// A rejected submission leaves the totals alone.
	progress, err := c.Progress(ctx, constants.DefaultDemoUserID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TotalChoices)
}

func TestStaticBackend_SaveProgressIsSwallowed(t *testing.T) {
	c, store, _ := newStaticClient(t)
	ctx := context.Background()

	chapter := 7
	saved, err := c.SaveProgress(ctx, constants.DefaultDemoUserID, models.UserProgressPatch{CurrentChapter: &chapter})
	require.NoError(t, err)
	assert.Nil(t, saved)

	// Nothing was persisted locally.
	_, ok, err := store.Get(constants.ProgressStoreKeyPrefix + constants.DefaultDemoUserID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticBackend_OverlayWinsOverBaseline(t *testing.T) {
	c, store, _ := newStaticClient(t)
	ctx := context.Background()

	key := constants.ProgressStoreKeyPrefix + constants.DefaultDemoUserID
	require.NoError(t, store.Set(key, []byte(`{"trustNetwork":42,"currentChapter":5}`)))

	progress, err := c.Progress(ctx, constants.DefaultDemoUserID)
	require.NoError(t, err)
	assert.Equal(t, 42, progress.TrustNetwork)
	assert.Equal(t, 5, progress.CurrentChapter)
	// Fields absent from the overlay fall through to the baseline.
	assert.Equal(t, 0, progress.CouncilStanding)
	assert.Equal(t, "demo-progress-1", progress.ID)
}
