package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/repository/postgres"
	"github.com/authly/authly-rhythm/internal/service"
	"github.com/authly/authly-rhythm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartService_ListPagination(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	chartService := service.NewChartService(repos.Chart)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		testutil.NewChartBuilder(owner.Username).
			WithTitle(fmt.Sprintf("chart-%02d", i)).
			WithCreatedAt(base.Add(time.Duration(i) * time.Minute)).
			Build(t, testDB.DB)
	}

	t.Run("second page of five", func(t *testing.T) {
		charts, total, err := chartService.List(ctx, 2, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, charts, 5)
		// Newest first: page 2 holds charts 6..2.
		assert.Equal(t, "chart-06", charts[0].Title)
		assert.Equal(t, "chart-02", charts[4].Title)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		charts, total, err := chartService.List(ctx, 1, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		assert.Len(t, charts, 12) // fewer rows than the 50 cap
	})

	t.Run("page zero treated as first page", func(t *testing.T) {
		first, _, err := chartService.List(ctx, 1, 5)
		require.NoError(t, err)
		zeroth, _, err := chartService.List(ctx, 0, 5)
		require.NoError(t, err)
		require.Len(t, zeroth, 5)
		assert.Equal(t, first[0].ID, zeroth[0].ID)
	})

	t.Run("limit zero clamped to one", func(t *testing.T) {
		charts, _, err := chartService.List(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, charts, 1)
	})
}

func TestChartService_CreateAssignsIDAndTimestamps(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	chartService := service.NewChartService(repos.Chart)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)

	keyPresses := []domain.KeyPress{{Key: "D", Time: 0}, {Key: "F", Time: 300}}
	id, err := chartService.Create(ctx, owner.Username, "My Chart", "https://cdn.test/a.mp3", keyPresses)
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	chart, err := chartService.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, chart)
	assert.Equal(t, owner.Username, chart.OwnerUsername)
	assert.Equal(t, "My Chart", chart.Title)
	assert.False(t, chart.CreatedAt.IsZero())

	second, err := chartService.Create(ctx, owner.Username, "Another", "https://cdn.test/b.mp3", keyPresses)
	require.NoError(t, err)
	assert.Greater(t, second, id)
}

func TestChartService_CreateValidation(t *testing.T) {
	chartService := service.NewChartService(nil)
	ctx := context.Background()

	_, err := chartService.Create(ctx, "amy", "", "https://cdn.test/a.mp3", []domain.KeyPress{{Key: "A"}})
	requireHTTPError(t, err, 400)

	_, err = chartService.Create(ctx, "amy", "Title", "https://cdn.test/a.mp3", nil)
	requireHTTPError(t, err, 400)
}

func TestChartService_GetUnknownReturnsNil(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	chartService := service.NewChartService(repos.Chart)

	chart, err := chartService.Get(context.Background(), 999999)
	require.NoError(t, err)
	assert.Nil(t, chart)
}

func TestChartService_DeleteOwnership(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	chartService := service.NewChartService(repos.Chart)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().WithUsername("owner").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("intruder").Build(t, testDB.DB)
	chart := testutil.NewChartBuilder(owner.Username).Build(t, testDB.DB)

	t.Run("non-owner is forbidden and chart remains", func(t *testing.T) {
		err := chartService.Delete(ctx, "intruder", chart.ID)
		requireHTTPError(t, err, 403)

		remaining, err := chartService.Get(ctx, chart.ID)
		require.NoError(t, err)
		assert.NotNil(t, remaining)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := chartService.Delete(ctx, owner.Username, chart.ID)
		require.NoError(t, err)

		gone, err := chartService.Get(ctx, chart.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("unknown chart is not found", func(t *testing.T) {
		err := chartService.Delete(ctx, owner.Username, 999999)
		requireHTTPError(t, err, 404)
	})
}

func requireHTTPError(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *domain.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
}
