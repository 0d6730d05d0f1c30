package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
)

func TestCall4Papers_GetAll(t *testing.T) {
	resp := `{"cfps": [
		{"conference_name": " GopherCon  EU ", "submission_deadline": "2025-03-15", "conference_start_date": "2025-06-16",
		 "conference_end_date": "2025-06-19", "location": "Berlin", "topics": "go, cloud , ", "submission_url": "https://sessionize.com/gceu",
		 "source_url": "https://gophercon.eu", "description": "<p>Talks &amp; workshops</p>"},
		{"conference_name": "RustConf", "conference_start_date": "2025-09-01", "topics": ["rust", "systems"],
		 "description": "Submit at https://rustconf.com/cfp."},
		{"conference_name": "", "conference_start_date": "2025-09-01"},
		"garbage"
	]}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		assert.Equal(t, "2025-04-01", r.URL.Query().Get("end_date"))
		_, _ = w.Write([]byte(resp))
	}))
	defer ts.Close()

	c := NewCall4Papers(NewHTTPClient(HTTPOpts{}), Call4PapersOpts{URL: ts.URL, Horizon: 31 * 24 * time.Hour})
	c.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	res := NewRunner[json.RawMessage](Call4PapersName, c).GetAll(context.Background())
	require.Len(t, res, 2, "empty name and non-object records are skipped")

	assert.Equal(t, domain.CFP{
		ConferenceName:      "GopherCon EU",
		SubmissionDeadline:  domain.Date(2025, 3, 15),
		ConferenceStartDate: domain.Date(2025, 6, 16),
		ConferenceEndDate:   domain.Date(2025, 6, 19),
		Location:            "Berlin",
		Topics:              []string{"go", "cloud"},
		SubmissionURL:       "https://sessionize.com/gceu",
		SourceURL:           "https://gophercon.eu",
		Source:              Call4PapersName,
		Description:         "Talks & workshops",
	}, res[0])

	rc := res[1]
	assert.Nil(t, rc.SubmissionDeadline)
	assert.Equal(t, domain.Date(2025, 9, 1), rc.ConferenceStartDate)
	assert.Equal(t, domain.Date(2025, 9, 1), rc.ConferenceEndDate, "end date defaults to start")
	assert.Equal(t, []string{"rust", "systems"}, rc.Topics)
	assert.Equal(t, "https://rustconf.com/cfp", rc.SubmissionURL, "taken from description")
}

func TestCall4Papers_FetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewCall4Papers(NewHTTPClient(HTTPOpts{}), Call4PapersOpts{URL: ts.URL})
	_, err := c.FetchRaw(context.Background())
	require.Error(t, err)

	r := NewRunner[json.RawMessage](Call4PapersName, c)
	assert.Empty(t, r.GetAll(context.Background()))
	_, ok := r.LastFetch()
	assert.True(t, ok, "rejected request still completes the fetch")
}

func TestCall4Papers_ParseOne(t *testing.T) {
	c := NewCall4Papers(nil, Call4PapersOpts{})

	res, err := c.ParseOne(json.RawMessage(`{"conference_name":"X","conference_start_date":"2025-09-01","is_virtual":true}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2025, 9, 1), res.ConferenceEndDate)
	assert.True(t, res.IsVirtual)
	assert.Empty(t, res.Topics)

	_, err = c.ParseOne(json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}
