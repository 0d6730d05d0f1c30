package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/normalize"
)

// GitHubEventsName is the source name of records produced by GitHubEvents
const GitHubEventsName = "github_events"

// DefaultGitHubRepos lists repository files read when none configured
var DefaultGitHubRepos = []GitHubRepo{
	{Owner: "Everything-Open-Source", Repo: "open-source-events", Path: "events.json"},
	{Owner: "scraly", Repo: "developers-conferences-agenda", Path: "README.md"},
}

// markdownEventRe matches entries like "### Name\n- Date: ...\n- CFP: ...\n"
var markdownEventRe = regexp.MustCompile(`(?m)^### (.+?)\n- Date: (.+?)\n- CFP: (.+?)\n`)

// GitHubRepo points to a file with events in a GitHub repository
type GitHubRepo struct {
	Owner string `yaml:"owner" json:"owner"`
	Repo  string `yaml:"repo" json:"repo"`
	Path  string `yaml:"path" json:"path"`
}

func (r GitHubRepo) String() string { return r.Owner + "/" + r.Repo + "/" + r.Path }

// GitHubEvents reads event lists stored as JSON or markdown files via the GitHub contents API
type GitHubEvents struct {
	client *HTTPClient
	apiURL string
	token  string
	repos  []GitHubRepo
}

// GitHubEventsOpts defines GitHubEvents parameters
type GitHubEventsOpts struct {
	APIURL string // default https://api.github.com
	Token  string // optional, raises the API rate limit
	Repos  []GitHubRepo
}

// GitHubEvent is a raw event from a JSON file or a markdown entry
type GitHubEvent struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	CFPDeadline string `json:"cfp_deadline"`
	CFPURL      string `json:"cfp_url"`
	URL         string `json:"url"`
	Location    string `json:"location"`
	IsVirtual   bool   `json:"is_virtual"`
	Topics      any    `json:"topics"`
	Description string `json:"description"`
}

// NewGitHubEvents makes the adapter
func NewGitHubEvents(client *HTTPClient, opts GitHubEventsOpts) *GitHubEvents {
	if opts.APIURL == "" {
		opts.APIURL = "https://api.github.com"
	}
	if len(opts.Repos) == 0 {
		opts.Repos = DefaultGitHubRepos
	}
	return &GitHubEvents{client: client, apiURL: strings.TrimSuffix(opts.APIURL, "/"), token: opts.Token, repos: opts.Repos}
}

// FetchRaw reads every configured file. A failed repository is logged and skipped,
// the fetch fails only if none of them could be read.
func (g *GitHubEvents) FetchRaw(ctx context.Context) ([]GitHubEvent, error) {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if g.token != "" {
		headers["Authorization"] = "Bearer " + g.token
	}

	res := []GitHubEvent{}
	loaded := 0
	for i, repo := range g.repos {
		if i > 0 {
			if err := g.client.Pace(ctx); err != nil {
				return nil, fmt.Errorf("fetch repos: %w", err)
			}
		}
		events, err := g.fetchRepo(ctx, repo, headers)
		if err != nil {
			lgr.Printf("[ERROR] failed to fetch events from %s: %v", repo, err)
			continue
		}
		loaded++
		lgr.Printf("[DEBUG] fetched %d events from %s", len(events), repo)
		res = append(res, events...)
	}

	if loaded == 0 && len(g.repos) > 0 {
		return nil, fmt.Errorf("no repository loaded out of %d", len(g.repos))
	}
	return res, nil
}

func (g *GitHubEvents) fetchRepo(ctx context.Context, repo GitHubRepo, headers map[string]string) ([]GitHubEvent, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.apiURL, repo.Owner, repo.Repo, repo.Path)
	var file struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := g.client.GetJSON(ctx, url, headers, &file); err != nil {
		return nil, err
	}
	if file.Encoding != "" && file.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported encoding %q", file.Encoding)
	}

	// the API splits base64 payload into lines
	content, err := base64.StdEncoding.DecodeString(strings.NewReplacer("\n", "", "\r", "").Replace(file.Content))
	if err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	switch {
	case strings.HasSuffix(repo.Path, ".json"):
		return decodeJSONEvents(content)
	case strings.HasSuffix(repo.Path, ".md"):
		return ParseMarkdownEvents(string(content)), nil
	default:
		return nil, fmt.Errorf("unsupported file type %s", repo.Path)
	}
}

// decodeJSONEvents decodes a list of events, skipping elements which are not event objects
func decodeJSONEvents(content []byte) ([]GitHubEvent, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(content), &items); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	res := make([]GitHubEvent, 0, len(items))
	for i, item := range items {
		var ev GitHubEvent
		if err := json.Unmarshal(item, &ev); err != nil {
			lgr.Printf("[WARN] skip malformed event #%d: %v", i, err)
			continue
		}
		res = append(res, ev)
	}
	return res, nil
}

// ParseMarkdownEvents extracts events from markdown sections of "### name" followed by "- Date:" and "- CFP:" lines
func ParseMarkdownEvents(content string) []GitHubEvent {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	res := []GitHubEvent{}
	for _, m := range markdownEventRe.FindAllStringSubmatch(content, -1) {
		res = append(res, GitHubEvent{
			Name:   strings.TrimSpace(m[1]),
			Date:   strings.TrimSpace(m[2]),
			CFPURL: strings.TrimSpace(m[3]),
		})
	}
	return res
}

// ParseOne converts a single event. Events carry one date used for both start and end.
func (g *GitHubEvents) ParseOne(raw GitHubEvent) (domain.CFP, error) {
	date := parseDateLogged(raw.Date, GitHubEventsName)
	return domain.CFP{
		ConferenceName:      normalize.CleanText(raw.Name),
		SubmissionDeadline:  parseDateLogged(raw.CFPDeadline, GitHubEventsName),
		ConferenceStartDate: date,
		ConferenceEndDate:   date,
		Location:            normalize.CleanText(raw.Location),
		IsVirtual:           raw.IsVirtual,
		Topics:              normalize.SplitTopics(raw.Topics),
		SubmissionURL:       raw.CFPURL,
		SourceURL:           raw.URL,
		Source:              GitHubEventsName,
		Description:         normalize.SanitizeHTML(raw.Description),
	}, nil
}
