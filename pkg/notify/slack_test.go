package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
)

func TestFormatCFP(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		msg := FormatCFP(domain.CFP{
			ConferenceName:      "GopherCon EU",
			SubmissionDeadline:  domain.Date(2025, 3, 5),
			ConferenceStartDate: domain.Date(2025, 6, 16),
			ConferenceEndDate:   domain.Date(2025, 6, 19),
			Location:            "Berlin, Germany",
			Topics:              []string{"go", "cloud"},
			SubmissionURL:       "https://sessionize.com/gceu",
			SourceURL:           "https://gophercon.eu",
		})
		require.Len(t, msg.Blocks, 5)
		assert.Equal(t, "header", msg.Blocks[0].Type)
		assert.Equal(t, "🎤 New CFP: GopherCon EU", msg.Blocks[0].Text.Text)
		assert.Equal(t, "*Submission Deadline:*\nMarch 05, 2025", msg.Blocks[1].Fields[0].Text)
		assert.Equal(t, "*Conference Dates:*\nJune 16 - June 19, 2025", msg.Blocks[1].Fields[1].Text)
		assert.Equal(t, "*Location:*\nBerlin, Germany", msg.Blocks[2].Fields[0].Text)
		assert.Equal(t, "*Topics:*\ngo, cloud", msg.Blocks[2].Fields[1].Text)
		assert.Equal(t, "*Submission URL:* <https://sessionize.com/gceu|Submit your proposal>", msg.Blocks[3].Text.Text)
		assert.Equal(t, "*Conference Website:* <https://gophercon.eu|Learn more>", msg.Blocks[4].Text.Text)
	})

	t.Run("sparse virtual record", func(t *testing.T) {
		msg := FormatCFP(domain.CFP{
			ConferenceName:      "DevDays",
			ConferenceStartDate: domain.Date(2025, 7, 1),
			ConferenceEndDate:   domain.Date(2025, 7, 1),
			Location:            "Online",
			IsVirtual:           true,
		})
		require.Len(t, msg.Blocks, 3)
		assert.Equal(t, "*Submission Deadline:*\nNo deadline specified", msg.Blocks[1].Fields[0].Text)
		assert.Equal(t, "*Conference Dates:*\nJuly 01, 2025", msg.Blocks[1].Fields[1].Text)
		assert.Equal(t, "*Location:*\nVirtual Event", msg.Blocks[2].Fields[0].Text)
		assert.Equal(t, "*Topics:*\nNo topics specified", msg.Blocks[2].Fields[1].Text)
	})

	t.Run("no dates and no location", func(t *testing.T) {
		msg := FormatCFP(domain.CFP{ConferenceName: "X"})
		assert.Equal(t, "*Conference Dates:*\nDates not specified", msg.Blocks[1].Fields[1].Text)
		assert.Equal(t, "*Location:*\nLocation not specified", msg.Blocks[2].Fields[0].Text)
	})
}

func TestSlack_Post(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got Message
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte("ok"))
		}))
		defer ts.Close()

		msg := FormatCFP(domain.CFP{ConferenceName: "GopherCon"})
		err := NewSlack(ts.URL, time.Second, 1).Post(context.Background(), msg)
		require.NoError(t, err)
		assert.Equal(t, msg, got)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer ts.Close()

		err := NewSlack(ts.URL, time.Second, 3).Post(context.Background(), Message{})
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("no retry on client errors", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("invalid_token"))
		}))
		defer ts.Close()

		err := NewSlack(ts.URL, time.Second, 3).Post(context.Background(), Message{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_token")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
