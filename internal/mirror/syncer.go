package mirror

import (
	"context"
	"errors"
	"log/slog"

	"github.com/osse101/seedling/internal/domain"
)

// Remote is the authoritative API as seen from the client
type Remote interface {
	GetTree(ctx context.Context) (*domain.TreeState, error)
	Water(ctx context.Context) (*domain.WaterResult, error)
	Harvest(ctx context.Context, credential string) (*domain.HarvestResult, error)
}

// Syncer runs water and harvest against the server first and keeps the
// local mirror in step with what the server answered
type Syncer struct {
	mirror  *Mirror
	remote  Remote
	secrets SecretSource
}

// NewSyncer wires the mirror to a remote. secrets may be nil, which disables
// local fallback harvests.
func NewSyncer(m *Mirror, remote Remote, secrets SecretSource) *Syncer {
	return &Syncer{mirror: m, remote: remote, secrets: secrets}
}

// Mirror returns the local mirror
func (s *Syncer) Mirror() *Mirror {
	return s.mirror
}

// WaterRemoteFirst waters on the server and mirrors the answer. Any remote
// failure falls back to a local watering. The returned error is only ever a
// local cache write failure.
func (s *Syncer) WaterRemoteFirst(ctx context.Context) (domain.WaterResult, error) {
	res, err := s.remote.Water(ctx)
	if err != nil {
		slog.Warn(LogMsgRemoteWaterFailed, "error", err)
		return s.mirror.Water()
	}

	st := s.mirror.Read()
	st.WateredCount = res.WaterCount
	st.ReadyForHarvest = res.ReadyForHarvest
	if res.Allowed && !res.ReadyForHarvest {
		today := s.mirror.Today()
		st.LastWatered = &today
	}
	if err := s.mirror.Overwrite(st); err != nil {
		return domain.WaterResult{}, err
	}
	return *res, nil
}

// HarvestRemoteFirst harvests on the server. An explicit rejection is
// reported as is and never retried locally. Only an unreachable server falls
// back, and only when credential matches the locally provisioned secret.
func (s *Syncer) HarvestRemoteFirst(ctx context.Context, credential string) (domain.HarvestResult, error) {
	res, err := s.remote.Harvest(ctx, credential)
	if err != nil {
		return s.harvestFallback(err, credential)
	}

	if res.OK {
		// the server zeroed the cycle; keep the lifetime count it reports
		st := domain.TreeState{HarvestCount: res.HarvestCount}
		if err := s.mirror.Overwrite(st); err != nil {
			return domain.HarvestResult{}, err
		}
	}
	return *res, nil
}

func (s *Syncer) harvestFallback(remoteErr error, credential string) (domain.HarvestResult, error) {
	current := s.mirror.Read().HarvestCount

	var statusErr *StatusError
	switch {
	case errors.As(remoteErr, &statusErr):
		msg := statusErr.Code
		if msg == "" {
			msg = domain.HarvestMsgServer
		}
		return domain.HarvestResult{OK: false, Message: msg, HarvestCount: current}, nil

	case errors.Is(remoteErr, domain.ErrTransport):
		slog.Warn(LogMsgRemoteHarvestDown, "error", remoteErr)
		if !localSecretMatches(s.secrets, credential) {
			return domain.HarvestResult{OK: false, Message: domain.HarvestMsgNetwork, HarvestCount: current}, nil
		}
		slog.Info(LogMsgLocalHarvest)
		return s.mirror.CompleteHarvest()

	default:
		return domain.HarvestResult{OK: false, Message: domain.HarvestMsgServer, HarvestCount: current}, nil
	}
}

// SyncFromServer overwrites the local cache with the server's state and
// reports whether the fetch succeeded
func (s *Syncer) SyncFromServer(ctx context.Context) bool {
	st, err := s.remote.GetTree(ctx)
	if err != nil {
		slog.Warn(LogMsgSyncFailed, "error", err)
		return false
	}
	if err := s.mirror.Overwrite(*st); err != nil {
		slog.Warn(LogMsgSyncFailed, "error", err)
		return false
	}
	return true
}
