package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// maxSnapshotTTL caps the practical lifetime of a cached session snapshot.
// The durable session row is the source of truth; the snapshot is renewed on
// write and may disappear earlier.
const maxSnapshotTTL = 24 * time.Hour

func snapshotTTL(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl > maxSnapshotTTL {
		return maxSnapshotTTL
	}
	return ttl
}

// writeSnapshot serializes the snapshot under session:{id} with a TTL bound
// by the session expiry.
func writeSnapshot(ctx context.Context, cache domain.CacheStore, snap *domain.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	ttl := snapshotTTL(time.Unix(snap.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	return cache.Set(ctx, domain.SessionKey(snap.ID), string(data), ttl)
}

// readSnapshot loads and decodes the snapshot for a session id. Returns
// domain.ErrCacheMiss when none is cached.
func readSnapshot(ctx context.Context, cache domain.CacheStore, sessionID string) (*domain.SessionSnapshot, error) {
	data, err := cache.Get(ctx, domain.SessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	var snap domain.SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &snap, nil
}

// patchSnapshot applies mutate to the live snapshot of a session, preserving
// every other field and the remaining TTL. A missing snapshot is not an
// error: the durable row stays authoritative.
func patchSnapshot(ctx context.Context, cache domain.CacheStore, sessionID string, mutate func(*domain.SessionSnapshot)) error {
	snap, err := readSnapshot(ctx, cache, sessionID)
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil
		}
		return err
	}

	ttl, err := cache.TTL(ctx, domain.SessionKey(sessionID))
	if err != nil {
		return fmt.Errorf("failed to read snapshot TTL: %w", err)
	}
	if ttl <= 0 {
		return nil
	}

	mutate(snap)
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	return cache.Set(ctx, domain.SessionKey(sessionID), string(data), ttl)
}
