package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/normalize"
)

// Call4PapersName is the source name of records produced by Call4Papers
const Call4PapersName = "call4papers"

// Call4Papers reads open CFPs from the call4papers JSON API
type Call4Papers struct {
	client  *HTTPClient
	url     string
	horizon time.Duration
	now     func() time.Time
}

// Call4PapersOpts defines Call4Papers parameters
type Call4PapersOpts struct {
	URL     string        // api endpoint, default https://www.call4papers.com/api/v1/cfp
	Horizon time.Duration // request CFPs closing within this period, default 90 days
}

// call4papersRecord is a single entry of the "cfps" list
type call4papersRecord struct {
	ConferenceName      string `json:"conference_name"`
	SubmissionDeadline  string `json:"submission_deadline"`
	ConferenceStartDate string `json:"conference_start_date"`
	ConferenceEndDate   string `json:"conference_end_date"`
	Location            string `json:"location"`
	IsVirtual           bool   `json:"is_virtual"`
	Topics              any    `json:"topics"` // either "a, b" or ["a", "b"]
	SubmissionURL       string `json:"submission_url"`
	SourceURL           string `json:"source_url"`
	Description         string `json:"description"`
}

// NewCall4Papers makes the adapter
func NewCall4Papers(client *HTTPClient, opts Call4PapersOpts) *Call4Papers {
	if opts.URL == "" {
		opts.URL = "https://www.call4papers.com/api/v1/cfp"
	}
	if opts.Horizon == 0 {
		opts.Horizon = 90 * 24 * time.Hour
	}
	return &Call4Papers{client: client, url: opts.URL, horizon: opts.Horizon, now: time.Now}
}

// FetchRaw requests open CFPs closing before now+horizon, each record is kept undecoded for ParseOne
func (c *Call4Papers) FetchRaw(ctx context.Context) ([]json.RawMessage, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("parse url %s: %w", c.url, err)
	}
	q := u.Query()
	q.Set("end_date", c.now().Add(c.horizon).Format(time.DateOnly))
	q.Set("status", "open")
	u.RawQuery = q.Encode()

	var resp struct {
		CFPs []json.RawMessage `json:"cfps"`
	}
	if err := c.client.GetJSON(ctx, u.String(), map[string]string{"Accept": "application/json"}, &resp); err != nil {
		return nil, err
	}
	return resp.CFPs, nil
}

// ParseOne converts a single record. Missing end date takes the start date,
// missing submission URL is taken from the first link in the description.
func (c *Call4Papers) ParseOne(raw json.RawMessage) (domain.CFP, error) {
	var rec call4papersRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.CFP{}, fmt.Errorf("decode record: %w", err)
	}

	res := domain.CFP{
		ConferenceName:      normalize.CleanText(rec.ConferenceName),
		SubmissionDeadline:  parseDateLogged(rec.SubmissionDeadline, Call4PapersName),
		ConferenceStartDate: parseDateLogged(rec.ConferenceStartDate, Call4PapersName),
		ConferenceEndDate:   parseDateLogged(rec.ConferenceEndDate, Call4PapersName),
		Location:            normalize.CleanText(rec.Location),
		IsVirtual:           rec.IsVirtual,
		Topics:              normalize.SplitTopics(rec.Topics),
		SubmissionURL:       rec.SubmissionURL,
		SourceURL:           rec.SourceURL,
		Source:              Call4PapersName,
		Description:         normalize.SanitizeHTML(rec.Description),
	}

	if res.ConferenceEndDate == nil && res.ConferenceStartDate != nil {
		res.ConferenceEndDate = res.ConferenceStartDate
	}

	if res.SubmissionURL == "" {
		if urls := normalize.ExtractURLs(rec.Description); len(urls) > 0 {
			res.SubmissionURL = urls[0]
		}
	}
	return res, nil
}
