package storage

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/internal/config"
)

var dbCounter atomic.Int64

// newTestRepository opens an isolated in-memory sqlite database.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:storage_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return NewRepository(db)
}

func TestCreateAndGetForm(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	form, err := repo.CreateForm(ctx, "u1", "Contact", "Reach out")
	require.NoError(t, err)
	assert.NotZero(t, form.ID)
	assert.Equal(t, "[]", form.Content)
	assert.Len(t, form.ShareURL, 36)
	assert.False(t, form.Published)

	got, err := repo.GetForm(ctx, "u1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contact", got.Name)

	_, err = repo.GetForm(ctx, "u2", form.ID)
	assert.ErrorIs(t, err, ErrNotFound, "forms are scoped to their owner")
}

func TestListFormsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.CreateForm(ctx, "u1", "First", "")
	require.NoError(t, err)
	second, err := repo.CreateForm(ctx, "u1", "Second", "")
	require.NoError(t, err)
	_, err = repo.CreateForm(ctx, "u2", "Other", "")
	require.NoError(t, err)

	forms, err := repo.ListForms(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, second.ID, forms[0].ID)
	assert.Equal(t, first.ID, forms[1].ID)
}

func TestUpdateContent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	form, err := repo.CreateForm(ctx, "u1", "Contact", "")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateContent(ctx, "u1", form.ID, `[{"id":"a"}]`))
	got, err := repo.GetForm(ctx, "u1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, got.Content)

	assert.ErrorIs(t, repo.UpdateContent(ctx, "u2", form.ID, "[]"), ErrNotFound)
}

func TestPublicAccessRequiresPublish(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	form, err := repo.CreateForm(ctx, "u1", "Contact", "")
	require.NoError(t, err)

	_, err = repo.IncrementVisits(ctx, form.ShareURL)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.AppendSubmission(ctx, form.ShareURL, "{}")
	assert.ErrorIs(t, err, ErrNotFound)

	published, err := repo.Publish(ctx, "u1", form.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	visited, err := repo.IncrementVisits(ctx, form.ShareURL)
	require.NoError(t, err)
	assert.Equal(t, 1, visited.Visits)
	_, err = repo.IncrementVisits(ctx, form.ShareURL)
	require.NoError(t, err)

	_, err = repo.AppendSubmission(ctx, form.ShareURL, `{"name":"Ada"}`)
	require.NoError(t, err)
	_, err = repo.AppendSubmission(ctx, form.ShareURL, `{"name":"Grace"}`)
	require.NoError(t, err)

	got, err := repo.GetForm(ctx, "u1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Visits)
	assert.Equal(t, 2, got.Submissions)

	subs, err := repo.ListSubmissions(ctx, "u1", form.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, `{"name":"Grace"}`, subs[0].Content)

	_, err = repo.ListSubmissions(ctx, "u2", form.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	stats, err := repo.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Visits: 2, Submissions: 2, SubmissionRate: 100, BounceRate: 0}, stats)
}

func TestStatsWithoutVisits(t *testing.T) {
	repo := newTestRepository(t)

	stats, err := repo.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, Stats{BounceRate: 100}, stats)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
