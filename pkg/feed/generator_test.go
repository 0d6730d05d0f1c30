package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/cfptrack/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://cfp.example.com/")
	generator.now = func() time.Time { return time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC) }

	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cfps := []domain.CFP{
		{
			ID:                  1,
			ConferenceName:      "GopherCon EU",
			SubmissionDeadline:  domain.Date(2025, 3, 5),
			ConferenceStartDate: domain.Date(2025, 6, 16),
			ConferenceEndDate:   domain.Date(2025, 6, 19),
			Location:            "Berlin, Germany",
			Topics:              []string{"go", "cloud"},
			SubmissionURL:       "https://sessionize.com/gceu",
			SourceURL:           "https://gophercon.eu",
			Description:         "Talks & workshops",
			CreatedAt:           created,
		},
		{
			ID:                  2,
			ConferenceName:      "DevDays",
			ConferenceStartDate: domain.Date(2025, 7, 1),
			ConferenceEndDate:   domain.Date(2025, 7, 1),
			IsVirtual:           true,
			Location:            "Online",
			SourceURL:           "https://devdays.example.com",
			CreatedAt:           created.Add(time.Hour),
		},
	}

	rss, err := generator.GenerateRSS(cfps, 48)
	require.NoError(t, err)

	t.Run("raw structure", func(t *testing.T) {
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://cfp.example.com/rss?hours=48" rel="self" type="application/rss+xml"></link>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">https://cfp.example.com/cfp/1</guid>`)
		assert.Contains(t, rss, `Talks &amp; workshops`)
	})

	t.Run("readable by feed parsers", func(t *testing.T) {
		parsed, err := gofeed.NewParser().ParseString(rss)
		require.NoError(t, err)

		assert.Equal(t, "CFP Tracker - New CFPs", parsed.Title)
		assert.Equal(t, "Calls for papers added in the last 48 hours", parsed.Description)
		assert.Equal(t, "https://cfp.example.com/", parsed.Link)
		require.Len(t, parsed.Items, 2)

		first := parsed.Items[0]
		assert.Equal(t, "GopherCon EU (CFP closes Mar 05, 2025)", first.Title)
		assert.Equal(t, "https://sessionize.com/gceu", first.Link)
		assert.Equal(t, []string{"go", "cloud"}, first.Categories)
		require.NotNil(t, first.PublishedParsed)
		assert.True(t, created.Equal(*first.PublishedParsed))
		assert.Equal(t, "Dates: Jun 16 - Jun 19, 2025\nLocation: Berlin, Germany\nTopics: go, cloud\n"+
			"Website: https://gophercon.eu\n\nTalks & workshops", first.Description)

		second := parsed.Items[1]
		assert.Equal(t, "DevDays", second.Title)
		assert.Equal(t, "https://devdays.example.com", second.Link, "falls back to the website")
		assert.Equal(t, "Dates: Jul 01, 2025\nLocation: Virtual Event", second.Description)
		assert.Empty(t, second.Categories)
	})

	t.Run("empty feed", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, 24)
		require.NoError(t, err)
		assert.Equal(t, 0, strings.Count(rss, "<item>"))
		assert.Contains(t, rss, "<lastBuildDate>Fri, 02 May 2025 08:00:00 +0000</lastBuildDate>")
	})
}
