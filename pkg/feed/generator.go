// Package feed renders recently stored CFPs as an RSS 2.0 feed
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/cfptrack/pkg/domain"
)

// Generator creates RSS feeds from stored CFPs
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator, baseURL is used for channel and self links
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS creates an RSS 2.0 feed of CFPs stored within the last hours
func (g *Generator) GenerateRSS(cfps []domain.CFP, hours int) (string, error) {
	items := make([]*RSSItem, 0, len(cfps))
	for _, c := range cfps {
		items = append(items, g.convertToRSSItem(c))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "CFP Tracker - New CFPs",
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Calls for papers added in the last %d hours", hours),
			AtomLink:      &AtomLink{Href: fmt.Sprintf("%s/rss?hours=%d", g.baseURL, hours), Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().UTC().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a CFP to an RSS item, the link prefers the submission page
func (g *Generator) convertToRSSItem(c domain.CFP) *RSSItem {
	title := c.ConferenceName
	if c.SubmissionDeadline != nil {
		title += fmt.Sprintf(" (CFP closes %s)", c.SubmissionDeadline.Format("Jan 02, 2006"))
	}

	var lines []string
	if c.ConferenceStartDate != nil {
		lines = append(lines, "Dates: "+formatDates(c.ConferenceStartDate, c.ConferenceEndDate))
	}
	switch {
	case c.IsVirtual:
		lines = append(lines, "Location: Virtual Event")
	case c.Location != "":
		lines = append(lines, "Location: "+c.Location)
	}
	if len(c.Topics) > 0 {
		lines = append(lines, "Topics: "+strings.Join(c.Topics, ", "))
	}
	if c.SourceURL != "" && c.SourceURL != c.SubmissionURL {
		lines = append(lines, "Website: "+c.SourceURL)
	}
	if c.Description != "" {
		lines = append(lines, "", c.Description)
	}

	link := c.SubmissionURL
	if link == "" {
		link = c.SourceURL
	}

	return &RSSItem{
		Title:       title,
		Link:        link,
		GUID:        RSSGUID{Value: fmt.Sprintf("%s/cfp/%d", g.baseURL, c.ID)},
		Description: strings.Join(lines, "\n"),
		PubDate:     c.CreatedAt.UTC().Format(time.RFC1123Z),
		Categories:  c.Topics,
	}
}

func formatDates(start, end *time.Time) string {
	if end == nil || start.Equal(*end) {
		return start.Format("Jan 02, 2006")
	}
	return start.Format("Jan 02") + " - " + end.Format("Jan 02, 2006")
}
