package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/normalize"
)

// DevEventsName is the source name of records produced by DevEvents
const DevEventsName = "dev.events"

// DevEventsTopics are assigned to every dev.events record, the page has no per-event topics
var DevEventsTopics = []string{"technology", "software development"}

var virtualTokens = []string{"virtual", "online", "remote", "digital"}

// DevEvents scrapes the conference table of the dev.events page
type DevEvents struct {
	client *HTTPClient
	url    string
}

// DevEventsOpts defines DevEvents parameters
type DevEventsOpts struct {
	URL string // default https://dev.events/conferences
}

// DevEventsRow is one scraped table row with cell texts and the resolved conference link
type DevEventsRow struct {
	Name     string
	Link     string
	Dates    string
	Location string
}

// NewDevEvents makes the adapter
func NewDevEvents(client *HTTPClient, opts DevEventsOpts) *DevEvents {
	if opts.URL == "" {
		opts.URL = "https://dev.events/conferences"
	}
	return &DevEvents{client: client, url: opts.URL}
}

// FetchRaw loads the page and extracts rows of its first table
func (d *DevEvents) FetchRaw(ctx context.Context) ([]DevEventsRow, error) {
	body, err := d.client.Get(ctx, d.url, map[string]string{"Accept": "text/html,application/xhtml+xml"})
	if err != nil {
		return nil, err
	}
	return ParseDevEventsPage(body, d.url)
}

// ParseDevEventsPage extracts conference rows from the first table of the page.
// Rows with less than three cells or without a link in the first cell are skipped,
// relative links are resolved against pageURL.
func ParseDevEventsPage(body []byte, pageURL string) ([]DevEventsRow, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url %s: %w", pageURL, err)
	}

	doc := goquery.NewDocumentFromNode(root)
	table := doc.Find("table").First()
	if table.Length() == 0 {
		lgr.Printf("[WARN] no conference table found at %s", pageURL)
		return []DevEventsRow{}, nil
	}

	res := []DevEventsRow{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return // header or malformed row
		}
		href, ok := cells.Eq(0).Find("a[href]").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		link, err := base.Parse(strings.TrimSpace(href))
		if err != nil {
			lgr.Printf("[WARN] skip row with bad link %q: %v", href, err)
			return
		}
		res = append(res, DevEventsRow{
			Name:     cells.Eq(0).Text(),
			Link:     link.String(),
			Dates:    cells.Eq(1).Text(),
			Location: cells.Eq(2).Text(),
		})
	})
	return res, nil
}

// ParseOne converts a row. Dates are "start - end" or a single date,
// an unparseable date is logged and left unknown.
func (d *DevEvents) ParseOne(raw DevEventsRow) (domain.CFP, error) {
	var start, end string
	dates := normalize.CleanText(raw.Dates)
	if s, e, ok := strings.Cut(dates, " - "); ok {
		start, end = s, e
	} else {
		start, end = dates, dates
	}

	location := normalize.CleanText(raw.Location)
	res := domain.CFP{
		ConferenceName:      normalize.CleanText(raw.Name),
		ConferenceStartDate: parseDateLogged(start, DevEventsName),
		ConferenceEndDate:   parseDateLogged(end, DevEventsName),
		Location:            location,
		IsVirtual:           isVirtualLocation(location),
		Topics:              append([]string{}, DevEventsTopics...),
		SubmissionURL:       raw.Link,
		SourceURL:           raw.Link,
		Source:              DevEventsName,
	}
	return res, nil
}

// isVirtualLocation checks if location mentions an online format
func isVirtualLocation(location string) bool {
	l := strings.ToLower(location)
	for _, tok := range virtualTokens {
		if strings.Contains(l, tok) {
			return true
		}
	}
	return false
}
