package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/notify"
	"github.com/umputun/cfptrack/pkg/notify/mocks"
)

func TestService_NotifyNew(t *testing.T) {
	cfps := []domain.CFP{{ConferenceName: "A"}, {ConferenceName: "B"}, {ConferenceName: "C"}}

	t.Run("posts every new cfp", func(t *testing.T) {
		store := &mocks.StoreMock{ListCreatedSinceFunc: func(context.Context, time.Time) ([]domain.CFP, error) {
			return cfps, nil
		}}
		poster := &mocks.PosterMock{PostFunc: func(context.Context, notify.Message) error { return nil }}

		before := time.Now().UTC()
		res, err := notify.NewService(store, poster).NotifyNew(context.Background(), 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, notify.NotifyResult{Found: 3, Sent: 3}, res)

		require.Len(t, store.ListCreatedSinceCalls(), 1)
		since := store.ListCreatedSinceCalls()[0].Since
		assert.WithinDuration(t, before.Add(-24*time.Hour), since, 5*time.Second)

		require.Len(t, poster.PostCalls(), 3)
		assert.Equal(t, "🎤 New CFP: B", poster.PostCalls()[1].Msg.Blocks[0].Text.Text)
	})

	t.Run("failure on one cfp does not stop the rest", func(t *testing.T) {
		store := &mocks.StoreMock{ListCreatedSinceFunc: func(context.Context, time.Time) ([]domain.CFP, error) {
			return cfps, nil
		}}
		poster := &mocks.PosterMock{PostFunc: func(_ context.Context, msg notify.Message) error {
			if msg.Blocks[0].Text.Text == "🎤 New CFP: A" {
				return errors.New("webhook down")
			}
			return nil
		}}

		res, err := notify.NewService(store, poster).NotifyNew(context.Background(), time.Hour)
		require.ErrorIs(t, err, notify.ErrDelivery)
		assert.Equal(t, notify.NotifyResult{Found: 3, Sent: 2, Failed: 1}, res)
		assert.Len(t, poster.PostCalls(), 3)
	})

	t.Run("nothing new", func(t *testing.T) {
		store := &mocks.StoreMock{ListCreatedSinceFunc: func(context.Context, time.Time) ([]domain.CFP, error) {
			return nil, nil
		}}
		poster := &mocks.PosterMock{}

		res, err := notify.NewService(store, poster).NotifyNew(context.Background(), time.Hour)
		require.NoError(t, err)
		assert.Equal(t, notify.NotifyResult{}, res)
	})

	t.Run("store error", func(t *testing.T) {
		store := &mocks.StoreMock{ListCreatedSinceFunc: func(context.Context, time.Time) ([]domain.CFP, error) {
			return nil, errors.New("db closed")
		}}

		_, err := notify.NewService(store, &mocks.PosterMock{}).NotifyNew(context.Background(), time.Hour)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db closed")
	})

	t.Run("not configured", func(t *testing.T) {
		store := &mocks.StoreMock{}
		_, err := notify.NewService(store, nil).NotifyNew(context.Background(), time.Hour)
		require.ErrorIs(t, err, notify.ErrNotConfigured)
		assert.Empty(t, store.ListCreatedSinceCalls())
	})
}
