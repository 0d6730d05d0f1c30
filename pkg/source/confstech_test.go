package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
)

func TestConfsTech_GetAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2025/go.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"name": "GopherCon", "url": "https://gophercon.com", "startDate": "2025-08-26", "endDate": "2025-08-28",
			 "city": "New York", "country": "U.S.A.", "cfpUrl": "https://gophercon.com/cfp", "cfpEndDate": "2025-04-01"},
			{"name": "Go Remote Day", "url": "https://remote.go", "startDate": "2025-10-10", "online": true, "topics": ["cloud"]}
		]`))
	})
	mux.HandleFunc("/2025/rust.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/2025/data.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := NewConfsTech(NewHTTPClient(HTTPOpts{}), ConfsTechOpts{BaseURL: ts.URL + "/", Year: 2025,
		Categories: []string{"rust", "go", "data"}})
	res := NewRunner[ConfsTechRecord](ConfsTechName, c).GetAll(context.Background())
	require.Len(t, res, 2, "broken categories are skipped")

	assert.Equal(t, domain.CFP{
		ConferenceName:      "GopherCon",
		SubmissionDeadline:  domain.Date(2025, 4, 1),
		ConferenceStartDate: domain.Date(2025, 8, 26),
		ConferenceEndDate:   domain.Date(2025, 8, 28),
		Location:            "New York, U.S.A.",
		Topics:              []string{"go"},
		SubmissionURL:       "https://gophercon.com/cfp",
		SourceURL:           "https://gophercon.com",
		Source:              "confs.tech",
	}, res[0])

	assert.True(t, res[1].IsVirtual)
	assert.Equal(t, []string{"go", "cloud"}, res[1].Topics)
	assert.Equal(t, domain.Date(2025, 10, 10), res[1].ConferenceEndDate)
	assert.Empty(t, res[1].Location)
}

func TestConfsTech_AllCategoriesFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewConfsTech(NewHTTPClient(HTTPOpts{}), ConfsTechOpts{BaseURL: ts.URL, Year: 2025, Categories: []string{"go", "rust"}})
	_, err := c.FetchRaw(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no category loaded")
}

func TestConfsTech_ParseOneLocation(t *testing.T) {
	c := NewConfsTech(nil, ConfsTechOpts{})
	tbl := []struct {
		data, want string
	}{
		{`{"name":"A","city":"Paris","country":"France"}`, "Paris, France"},
		{`{"name":"A","country":"France"}`, "France"},
		{`{"name":"A","city":"Paris"}`, "Paris"},
		{`{"name":"A"}`, ""},
	}
	for _, tt := range tbl {
		res, err := c.ParseOne(ConfsTechRecord{Category: "go", Data: []byte(tt.data)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Location)
	}

	_, err := c.ParseOne(ConfsTechRecord{Data: []byte(`"str"`)})
	assert.Error(t, err)
}
