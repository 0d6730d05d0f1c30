package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/normalize"
)

// ConfsTechName is the source name of records produced by ConfsTech
const ConfsTechName = "confs.tech"

// DefaultConfsTechCategories lists category files fetched when none configured
var DefaultConfsTechCategories = []string{
	"python", "javascript", "java", "dotnet", "cpp", "rust",
	"go", "php", "ruby", "scala", "kotlin", "swift", "android",
	"ios", "data", "devops", "security", "testing", "ux", "accessibility",
}

// ConfsTech reads per-category JSON files of the tech-conferences/conference-data GitHub repository
type ConfsTech struct {
	client     *HTTPClient
	baseURL    string
	year       int
	categories []string
}

// ConfsTechOpts defines ConfsTech parameters
type ConfsTechOpts struct {
	BaseURL    string // default https://raw.githubusercontent.com/tech-conferences/conference-data/main/conferences
	Year       int    // default is the current year
	Categories []string
}

// ConfsTechRecord is one conference from a category file, decoded lazily by ParseOne
type ConfsTechRecord struct {
	Category string
	Data     json.RawMessage
}

type confsTechEntry struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Online      bool   `json:"online"`
	CFPURL      string `json:"cfpUrl"`
	CFPEndDate  string `json:"cfpEndDate"`
	Topics      any    `json:"topics"`
	Description string `json:"description"`
}

// NewConfsTech makes the adapter
func NewConfsTech(client *HTTPClient, opts ConfsTechOpts) *ConfsTech {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://raw.githubusercontent.com/tech-conferences/conference-data/main/conferences"
	}
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	if len(opts.Categories) == 0 {
		opts.Categories = DefaultConfsTechCategories
	}
	return &ConfsTech{
		client:     client,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		year:       opts.Year,
		categories: opts.Categories,
	}
}

// FetchRaw loads category files one by one. A broken category is logged and skipped,
// the fetch fails only if no category could be loaded.
func (c *ConfsTech) FetchRaw(ctx context.Context) ([]ConfsTechRecord, error) {
	res := []ConfsTechRecord{}
	loaded := 0
	for i, category := range c.categories {
		if i > 0 {
			if err := c.client.Pace(ctx); err != nil {
				return nil, fmt.Errorf("fetch categories: %w", err)
			}
		}

		url := c.baseURL + "/" + strconv.Itoa(c.year) + "/" + category + ".json"
		body, err := c.client.Get(ctx, url, map[string]string{"Accept": "application/json"})
		if err != nil {
			lgr.Printf("[ERROR] failed to fetch %s.json: %v", category, err)
			continue
		}
		if strings.TrimSpace(string(body)) == "" {
			lgr.Printf("[INFO] empty response for %s.json", category)
			loaded++
			continue
		}

		var entries []json.RawMessage
		if err := json.Unmarshal(body, &entries); err != nil {
			lgr.Printf("[ERROR] unexpected data format in %s.json: %v", category, err)
			continue
		}
		loaded++
		lgr.Printf("[DEBUG] fetched %d conferences from %s.json", len(entries), category)
		for _, e := range entries {
			res = append(res, ConfsTechRecord{Category: category, Data: e})
		}
	}

	if loaded == 0 && len(c.categories) > 0 {
		return nil, fmt.Errorf("no category loaded out of %d", len(c.categories))
	}
	return res, nil
}

// ParseOne converts a single conference. The category goes first in topics,
// location is "city, country", end date defaults to the start date.
func (c *ConfsTech) ParseOne(raw ConfsTechRecord) (domain.CFP, error) {
	var e confsTechEntry
	if err := json.Unmarshal(raw.Data, &e); err != nil {
		return domain.CFP{}, fmt.Errorf("decode record: %w", err)
	}

	location := normalize.CleanText(e.City)
	if country := normalize.CleanText(e.Country); country != "" {
		if location != "" {
			location += ", " + country
		} else {
			location = country
		}
	}

	topics := []string{}
	if raw.Category != "" {
		topics = append(topics, raw.Category)
	}
	topics = append(topics, normalize.SplitTopics(e.Topics)...)

	res := domain.CFP{
		ConferenceName:      normalize.CleanText(e.Name),
		SubmissionDeadline:  parseDateLogged(e.CFPEndDate, ConfsTechName),
		ConferenceStartDate: parseDateLogged(e.StartDate, ConfsTechName),
		ConferenceEndDate:   parseDateLogged(e.EndDate, ConfsTechName),
		Location:            location,
		IsVirtual:           e.Online,
		Topics:              topics,
		SubmissionURL:       e.CFPURL,
		SourceURL:           e.URL,
		Source:              ConfsTechName,
		Description:         normalize.SanitizeHTML(e.Description),
	}
	if res.ConferenceEndDate == nil {
		res.ConferenceEndDate = res.ConferenceStartDate
	}
	return res, nil
}
