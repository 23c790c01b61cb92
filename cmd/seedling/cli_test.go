package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/osse101/seedling/internal/clock"
	"github.com/osse101/seedling/internal/domain"
	"github.com/osse101/seedling/internal/mirror"
)

// sharedStore survives across cli runs but ignores Close
type sharedStore struct {
	*mirror.MemoryStore
}

func (sharedStore) Close() error { return nil }

type harness struct {
	store *mirror.MemoryStore
	clock *clock.SimulatedClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gokeyring.MockInit()
	return &harness{
		store: mirror.NewMemoryStore(),
		clock: clock.NewSimulatedClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := newCLI(deps{
		openStore: func(string) (mirror.Store, error) { return sharedStore{h.store}, nil },
		secrets:   mirror.NewKeyringSecrets(),
		clock:     h.clock,
		stderr:    &errOut,
	})
	c.root.SetOut(&out)
	c.root.SetErr(&errOut)
	err := c.execute(args)
	return out.String(), err
}

func offlineServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return url
}

func TestCLI_OfflineWaterFallsBackLocally(t *testing.T) {
	h := newHarness(t)
	server := offlineServer(t)

	out, err := h.run(t, "--server", server, "--timeout", "200ms", "--json", "water")
	require.NoError(t, err)

	var res domain.WaterResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.WaterCount)

	out, err = h.run(t, "--server", server, "can-water")
	require.NoError(t, err)
	assert.Equal(t, "no\n", out)

	out, err = h.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "growing 1/10")
	assert.Contains(t, out, "last watered 2026-05-01")
}

func TestCLI_WaterMirrorsServer(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, mirror.PathWater, r.URL.Path)
		_, _ = w.Write([]byte(`{"allowed":true,"waterCount":7,"readyForHarvest":false}`))
	}))
	defer srv.Close()

	out, err := h.run(t, "--server", srv.URL, "water")
	require.NoError(t, err)
	assert.Equal(t, "watered 7/10\n", out)

	out, err = h.run(t, "--json", "status")
	require.NoError(t, err)
	var st domain.TreeState
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 7, st.WateredCount)
}

func TestCLI_HarvestOffline(t *testing.T) {
	h := newHarness(t)
	server := offlineServer(t)
	require.NoError(t, h.store.Set(mirror.StateKey, []byte(`{"wateredCount":10,"readyForHarvest":true,"harvestCount":1}`)))

	out, err := h.run(t, "--server", server, "harvest", "--pw", "letmein")
	require.NoError(t, err)
	assert.Equal(t, "harvest failed: network\n", out)

	_, err = h.run(t, "secret", "set", "letmein")
	require.NoError(t, err)

	out, err = h.run(t, "--server", server, "harvest", "--pw", "letmein")
	require.NoError(t, err)
	assert.Equal(t, "harvested, 2 so far\n", out)

	_, err = h.run(t, "secret", "clear")
	require.NoError(t, err)
}

func TestCLI_HarvestRequiresPassword(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "harvest")
	assert.Error(t, err)
}

func TestCLI_SyncAndReset(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"wateredCount":3,"lastWatered":"2026-04-30","harvestCount":6,"readyForHarvest":false}`))
	}))
	defer srv.Close()

	out, err := h.run(t, "--server", srv.URL, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "synced: growing 3/10")
	assert.Contains(t, out, "harvests 6")

	_, err = h.run(t, "reset")
	require.NoError(t, err)
	out, err = h.run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "growing 0/10")
	assert.Contains(t, out, "last watered never")

	_, err = h.run(t, "--server", offlineServer(t), "--timeout", "200ms", "sync")
	assert.ErrorIs(t, err, errSyncFailed)
}

func TestDescribeWater(t *testing.T) {
	tests := []struct {
		name string
		res  domain.WaterResult
		want string
	}{
		{"watered", domain.WaterResult{Allowed: true, WaterCount: 3}, "watered 3/10"},
		{"ripe now", domain.WaterResult{Allowed: true, WaterCount: 10, ReadyForHarvest: true}, "watered 10/10, ready for harvest"},
		{"already", domain.WaterResult{Reason: domain.ReasonAlreadyToday, WaterCount: 3}, "already watered today (3/10)"},
		{"need harvest", domain.WaterResult{Reason: domain.ReasonNeedHarvest, WaterCount: 10, ReadyForHarvest: true}, "the seedling is ripe (10/10), harvest it first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeWater(tt.res))
		})
	}
}

func TestGauge(t *testing.T) {
	assert.Equal(t, "[..........]", gauge(0))
	assert.Equal(t, "[####......]", gauge(4))
	assert.Equal(t, "[##########]", gauge(12))
	assert.Equal(t, "[..........]", gauge(-3))
}
