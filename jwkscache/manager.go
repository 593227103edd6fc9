package jwkscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Manager keeps a persisted copy of each realm's key set fresh. It reads from
// a SecureStore without ever blocking callers on network I/O; refreshes run on
// their own goroutines through the Transport.
//
// Manager performs no locking of its own. Two refreshes for the same realm can
// race on the store; the cooldown window is a best-effort throttle, not a
// mutual-exclusion guarantee, and the last store write wins.
type Manager struct {
	store     SecureStore
	transport Transport
	fetchCfg  FetchConfig
	logger    *zap.Logger

	now func() time.Time
}

// NewManager composes a Manager from its collaborators. transport may be nil,
// in which case an HTTPTransport with the default timeout is used. logger may
// be nil, in which case logging is disabled.
func NewManager(store SecureStore, transport Transport, fetchCfg FetchConfig, logger *zap.Logger) *Manager {
	if transport == nil {
		transport = NewHTTPTransport(DefaultRequestTimeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:     store,
		transport: transport,
		fetchCfg:  fetchCfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Load returns the realm's cached key set, or nil when none is usable yet.
//
// On a usable cached copy a freshness check runs in the background and the
// cached copy is returned immediately, regardless of the check's outcome. On
// a missing or undecodable copy a forced fetch is triggered and nil is
// returned; call Load again later to observe the result, or use Fetch with a
// completion callback. Load never returns an error and never waits on the
// network.
func (m *Manager) Load(ctx context.Context, realm RealmConfig) *KeySet {
	raw, err := m.store.GetString(ctx, contentKey(realm.Name))
	if err == nil {
		var keySet KeySet
		decodeErr := json.Unmarshal([]byte(raw), &keySet)
		if decodeErr == nil {
			recordLoad(resultHit)
			go m.FetchIfNeeded(context.Background(), realm, false)
			return &keySet
		}
		m.logger.Warn("discarding undecodable cached key set",
			zap.String("realm", realm.Name),
			zap.Error(decodeErr))
	} else if !errors.Is(err, ErrNotFound) {
		m.logger.Warn("failed to read cached key set",
			zap.String("realm", realm.Name),
			zap.Error(err))
	}

	recordLoad(resultMiss)
	go m.FetchIfNeeded(context.Background(), realm, true)
	return nil
}

// FetchIfNeeded triggers a fetch when forced or when the freshness policy
// says one is due, and reports whether a fetch was initiated. It never waits
// for the fetch to complete.
func (m *Manager) FetchIfNeeded(ctx context.Context, realm RealmConfig, forceFetch bool) bool {
	if !forceFetch && !m.fetchDue(ctx, realm) {
		recordFetchSkipped()
		return false
	}
	m.Fetch(ctx, realm, nil)
	return true
}

// fetchDue consults the persisted last-fetch timestamp. A missing or
// unreadable timestamp always allows a fetch.
func (m *Manager) fetchDue(ctx context.Context, realm RealmConfig) bool {
	seconds, err := m.store.GetFloat64(ctx, requestedDateKey(realm.Name))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Warn("failed to read last-fetch timestamp",
				zap.String("realm", realm.Name),
				zap.Error(err))
		}
		return ShouldFetch(nil, m.fetchCfg.MinInterval(), m.now())
	}
	lastFetch := timeFromEpochSeconds(seconds)
	return ShouldFetch(&lastFetch, m.fetchCfg.MinInterval(), m.now())
}

// Fetch retrieves the realm's key set over the network on its own goroutine
// and returns immediately. On success the raw document and the current
// timestamp are persisted before the typed key set is decoded for the
// callback.
//
// When onCompleted is non-nil it is invoked exactly once, with either the
// decoded key set or the error that stopped the fetch. When it is nil,
// failures are only logged.
func (m *Manager) Fetch(ctx context.Context, realm RealmConfig, onCompleted func(*KeySet, error)) {
	go m.fetch(ctx, realm, onCompleted)
}

func (m *Manager) fetch(ctx context.Context, realm RealmConfig, onCompleted func(*KeySet, error)) {
	complete := func(keySet *KeySet, err error) {
		if err != nil {
			recordFetch(resultError)
		} else {
			recordFetch(resultSuccess)
		}
		if onCompleted != nil {
			onCompleted(keySet, err)
		}
	}

	body, err := m.transport.Get(ctx, realm.JwksURL)
	if err != nil {
		m.logger.Error("jwks fetch failed",
			zap.String("realm", realm.Name),
			zap.String("url", realm.JwksURL),
			zap.Error(err))
		complete(nil, err)
		return
	}

	raw, err := json.Marshal(body)
	if err != nil {
		m.logger.Error("failed to serialize jwks response",
			zap.String("realm", realm.Name),
			zap.Error(err))
		complete(nil, err)
		return
	}

	// Persist content first, then the timestamp. The timestamp must only
	// ever reflect a successful persistence of the content.
	if err := m.store.SetString(ctx, contentKey(realm.Name), string(raw)); err != nil {
		m.logger.Error("failed to persist key set",
			zap.String("realm", realm.Name),
			zap.Error(err))
		complete(nil, err)
		return
	}
	if err := m.store.SetFloat64(ctx, requestedDateKey(realm.Name), epochSeconds(m.now())); err != nil {
		m.logger.Error("failed to persist last-fetch timestamp",
			zap.String("realm", realm.Name),
			zap.Error(err))
		complete(nil, err)
		return
	}

	var keySet KeySet
	if err := json.Unmarshal(raw, &keySet); err != nil {
		m.logger.Warn("persisted jwks response does not decode to a key set",
			zap.String("realm", realm.Name),
			zap.Error(err))
		complete(nil, err)
		return
	}

	m.logger.Debug("refreshed key set",
		zap.String("realm", realm.Name),
		zap.Int("keys", len(keySet.Keys)))
	complete(&keySet, nil)
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func timeFromEpochSeconds(seconds float64) time.Time {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}
