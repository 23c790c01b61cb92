package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/seedling/internal/domain"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// testcontainers panics when no Docker daemon is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	s, err := Open(ctx, testDBConnString, 4, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.ResetTreeState(ctx))
	require.NoError(t, s.DeleteAllMessages(ctx))
	return s
}

func TestStore_Integration_TreeLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st, err := s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroTreeState(), *st)

	require.NoError(t, s.RecordWatering(ctx, 10, "2026-03-05", true))
	st, err = s.GetTreeState(ctx)
	require.NoError(t, err)
	day := domain.Day("2026-03-05")
	assert.Equal(t, domain.TreeState{WateredCount: 10, LastWatered: &day, ReadyForHarvest: true}, *st)

	require.NoError(t, s.RecordHarvest(ctx, 1))
	st, err = s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TreeState{HarvestCount: 1}, *st)
}

func TestStore_Integration_MigrationsAreIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, s.pool))
	require.NoError(t, s.EnsureTreeState(ctx))

	after, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Positive(t, after)

	var n int
	require.NoError(t, s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tree_state`).Scan(&n))
	assert.Equal(t, 1, n)

	_, err = s.pool.Exec(ctx, `INSERT INTO tree_state (id) VALUES (2)`)
	assert.Error(t, err, "singleton check must reject a second row")
}

func TestStore_Integration_Messages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	first := &domain.Message{Name: "ann", Text: "hello", Time: 1000}
	second := &domain.Message{Text: "again", Time: 2000}
	require.NoError(t, s.InsertMessage(ctx, second))
	require.NoError(t, s.InsertMessage(ctx, first))

	msgs, err = s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Message{*first, *second}, msgs)

	require.NoError(t, s.DeleteMessage(ctx, first.ID))
	require.NoError(t, s.DeleteMessage(ctx, first.ID))
	msgs, err = s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Message{*second}, msgs)
}

func TestStore_Integration_ConcurrentWatersKeepSingleRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, s.RecordWatering(ctx, n, "2026-03-06", false))
		}(i)
	}
	wg.Wait()

	st, err := s.GetTreeState(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, st.WateredCount, 1)
	assert.LessOrEqual(t, st.WateredCount, 8)
}
