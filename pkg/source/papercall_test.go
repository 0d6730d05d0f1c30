package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
)

func TestPaperCall_GetAll(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>PaperCall.io - Open CFPs</title>
	<link>https://www.papercall.io</link>
	<item>
		<title>RubyConf 2025</title>
		<link>https://www.papercall.io/rubyconf2025</link>
		<description><![CDATA[<p>The CFP closes at 23:59 UTC on March 3, 2026. Join us!</p>]]></description>
		<category>ruby</category>
		<category>web</category>
	</item>
	<item>
		<title>No Deadline Meetup</title>
		<link>https://www.papercall.io/meetup</link>
		<description>Always open</description>
	</item>
	<item>
		<title>  </title>
		<link>https://www.papercall.io/empty</link>
	</item>
</channel>
</rss>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer ts.Close()

	p := NewPaperCall(NewHTTPClient(HTTPOpts{}), PaperCallOpts{URL: ts.URL})
	res := NewRunner[*gofeed.Item](PaperCallName, p).GetAll(context.Background())
	require.Len(t, res, 2, "item without title is skipped")

	assert.Equal(t, domain.CFP{
		ConferenceName:     "RubyConf 2025",
		SubmissionDeadline: domain.Date(2026, 3, 3),
		Topics:             []string{"ruby", "web"},
		SubmissionURL:      "https://www.papercall.io/rubyconf2025",
		SourceURL:          "https://www.papercall.io/rubyconf2025",
		Source:             PaperCallName,
		Description:        "The CFP closes at 23:59 UTC on March 3, 2026. Join us!",
	}, res[0])

	assert.Nil(t, res[1].SubmissionDeadline)
	assert.Empty(t, res[1].Topics)
}

func TestPaperCall_BadFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a feed"))
	}))
	defer ts.Close()

	_, err := NewPaperCall(NewHTTPClient(HTTPOpts{}), PaperCallOpts{URL: ts.URL}).FetchRaw(context.Background())
	require.Error(t, err)
}

func TestPaperCall_ParseOneISODeadline(t *testing.T) {
	p := NewPaperCall(nil, PaperCallOpts{})
	res, err := p.ParseOne(&gofeed.Item{Title: "X", Description: "Submissions close 2025-07-01"})
	require.NoError(t, err)
	assert.Equal(t, domain.Date(2025, 7, 1), res.SubmissionDeadline)

	_, err = p.ParseOne(nil)
	assert.Error(t, err)
}
