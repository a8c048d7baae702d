package dialing

import (
	"context"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/pkg/models"
)

type fakeDialReadyStore struct {
	leads    []models.DialReadyLead
	cooldown time.Duration
	limit    int
}

func (s *fakeDialReadyStore) DialReady(ctx context.Context, agencyID, ownerID string, cooldown time.Duration, limit int) ([]models.DialReadyLead, error) {
	s.cooldown = cooldown
	s.limit = limit
	return s.leads, nil
}

func noopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestSelectorPassesWindowSettings(t *testing.T) {
	store := &fakeDialReadyStore{}
	selector := NewSelector(store, SelectorConfig{Cooldown: 90 * time.Minute, Limit: 25}, noopLogger())

	_, err := selector.Select(context.Background(), "agency-1", "agent-1")
	require.NoError(t, err)

	assert.Equal(t, 90*time.Minute, store.cooldown)
	assert.Equal(t, 25, store.limit)
}

func TestSelectorDefaults(t *testing.T) {
	store := &fakeDialReadyStore{}
	selector := NewSelector(store, SelectorConfig{}, noopLogger())

	_, err := selector.Select(context.Background(), "agency-1", "agent-1")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, store.cooldown)
	assert.Equal(t, 50, store.limit)
}

func TestSelectorReturnsEmptyQueueNotNil(t *testing.T) {
	selector := NewSelector(&fakeDialReadyStore{}, SelectorConfig{}, noopLogger())

	leads, err := selector.Select(context.Background(), "agency-1", "agent-1")
	require.NoError(t, err)

	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}
