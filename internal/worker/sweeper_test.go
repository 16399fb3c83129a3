package worker

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/shopkeeper-server/internal/metrics"
	"github.com/dtroode/shopkeeper-server/internal/mocks"
	logtest "github.com/dtroode/shopkeeper-server/internal/testutil"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSweeper(t *testing.T, batch int) (*CartSweeper, *mocks.CartStore) {
	t.Helper()

	store := mocks.NewCartStore(t)
	s := NewCartSweeper(store, time.Minute, batch, logtest.MakeNoopLogger())
	s.now = func() time.Time { return fixedNow }
	return s, store
}

func TestNewCartSweeper_Defaults(t *testing.T) {
	t.Parallel()

	s := NewCartSweeper(mocks.NewCartStore(t), 0, 0, logtest.MakeNoopLogger())
	assert.Equal(t, time.Minute, s.interval)
	assert.Equal(t, 500, s.batch)
}

func TestCartSweeper_RunOnce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []int64
		err     error
		want    int64
	}{
		{name: "nothing due", results: []int64{0}, want: 0},
		{name: "partial batch", results: []int64{3}, want: 3},
		{name: "full batches continue", results: []int64{10, 10, 4}, want: 24},
		{name: "error stops sweep", results: []int64{10}, err: assert.AnError, want: 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, store := newTestSweeper(t, 10)
			for _, n := range tt.results {
				store.On("PurgeExpired", mock.Anything, fixedNow, 10).Return(n, nil).Once()
			}
			if tt.err != nil {
				store.On("PurgeExpired", mock.Anything, fixedNow, 10).Return(int64(0), tt.err).Once()
			}

			assert.Equal(t, tt.want, s.RunOnce(context.Background()))
		})
	}
}

func TestCartSweeper_RunOnce_CountsPurged(t *testing.T) {
	s, store := newTestSweeper(t, 10)
	store.On("PurgeExpired", mock.Anything, fixedNow, 10).Return(int64(7), nil).Once()

	before := testutil.ToFloat64(metrics.CartItemsPurgedTotal)
	s.RunOnce(context.Background())
	assert.Equal(t, before+7, testutil.ToFloat64(metrics.CartItemsPurgedTotal))
}

func TestCartSweeper_Run_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s, store := newTestSweeper(t, 10)
	store.On("PurgeExpired", mock.Anything, fixedNow, 10).Return(int64(0), nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
