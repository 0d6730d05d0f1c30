package source

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/normalize"
)

// PaperCallName is the source name of records produced by PaperCall
const PaperCallName = "papercall"

// closesRe finds the closing date in item descriptions like "CFP closes at 23:59 UTC on March 3, 2026"
var closesRe = regexp.MustCompile(`(?i:closes?)\b[^.]*?((?:[A-Z][a-z]+ \d{1,2}, \d{4})|(?:\d{4}-\d{2}-\d{2}))`)

// PaperCall reads the RSS feed of open CFPs
type PaperCall struct {
	client *HTTPClient
	url    string
}

// PaperCallOpts defines PaperCall parameters
type PaperCallOpts struct {
	URL string // default https://www.papercall.io/events.rss
}

// NewPaperCall makes the adapter
func NewPaperCall(client *HTTPClient, opts PaperCallOpts) *PaperCall {
	if opts.URL == "" {
		opts.URL = "https://www.papercall.io/events.rss"
	}
	return &PaperCall{client: client, url: opts.URL}
}

// FetchRaw loads and parses the feed, each item is a raw record
func (p *PaperCall) FetchRaw(ctx context.Context) ([]*gofeed.Item, error) {
	body, err := p.client.Get(ctx, p.url, map[string]string{"Accept": "application/rss+xml, application/xml"})
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed.Items, nil
}

// ParseOne converts a feed item. Title is the conference name, link is the submission URL,
// categories are topics, the deadline comes from the "closes" fragment of the description.
func (p *PaperCall) ParseOne(item *gofeed.Item) (domain.CFP, error) {
	if item == nil {
		return domain.CFP{}, fmt.Errorf("empty item")
	}
	description := normalize.SanitizeHTML(item.Description)

	res := domain.CFP{
		ConferenceName: normalize.CleanText(item.Title),
		Topics:         normalize.SplitTopics(item.Categories),
		SubmissionURL:  strings.TrimSpace(item.Link),
		SourceURL:      strings.TrimSpace(item.Link),
		Source:         PaperCallName,
		Description:    description,
	}
	if m := closesRe.FindStringSubmatch(description); m != nil {
		res.SubmissionDeadline = parseDateLogged(m[1], PaperCallName)
	}
	return res, nil
}
