package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/seedling/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "seedling.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_FreshDatabaseHasZeroState(t *testing.T) {
	s := openTestStore(t)

	st, err := s.GetTreeState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *st)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestStore_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seedling.sqlite")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.RecordWatering(ctx, 3, "2026-03-04", false))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	st, err := s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.WateredCount)
	assert.Equal(t, domain.Day("2026-03-04"), *st.LastWatered)
}

func TestStore_TreeWrites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.RecordHarvest(ctx, 4))
	require.NoError(t, s.RecordWatering(ctx, 10, "2026-03-05", true))

	st, err := s.GetTreeState(ctx)
	require.NoError(t, err)
	day := domain.Day("2026-03-05")
	assert.Equal(t, domain.TreeState{WateredCount: 10, LastWatered: &day, HarvestCount: 4, ReadyForHarvest: true}, *st)

	require.NoError(t, s.RecordHarvest(ctx, 5))
	st, err = s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TreeState{HarvestCount: 5}, *st)

	require.NoError(t, s.ResetTreeState(ctx))
	st, err = s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *st)
}

func TestStore_SingletonRowEnforced(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.DB().ExecContext(ctx, `INSERT INTO tree_state (id) VALUES (2)`)
	assert.Error(t, err)

	require.NoError(t, s.EnsureTreeState(ctx))
	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM tree_state`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestStore_MissingRow(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.DB().ExecContext(ctx, `DELETE FROM tree_state`)
	require.NoError(t, err)

	_, err = s.GetTreeState(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.ResetTreeState(ctx))
	st, err := s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *st)
}

func TestStore_Messages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NotNil(t, msgs)

	later := &domain.Message{Name: "bo", Text: "second", Time: 2000}
	earlier := &domain.Message{Name: "", Text: "first", Time: 1000}
	require.NoError(t, s.InsertMessage(ctx, later))
	require.NoError(t, s.InsertMessage(ctx, earlier))
	assert.NotZero(t, later.ID)
	assert.NotEqual(t, later.ID, earlier.ID)

	msgs, err = s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, *earlier, msgs[0])
	assert.Equal(t, *later, msgs[1])

	require.NoError(t, s.DeleteMessage(ctx, later.ID))
	require.NoError(t, s.DeleteMessage(ctx, 9999), "missing id is not an error")

	msgs, err = s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Message{*earlier}, msgs)

	require.NoError(t, s.DeleteAllMessages(ctx))
	msgs, err = s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestStore_ClosedDatabaseFails(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.sqlite"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.GetTreeState(context.Background())
	assert.Error(t, err)
}
