// Package notify delivers newly stored CFPs to a Slack incoming webhook
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/cfptrack/pkg/domain"
)

// errPermanent stops retries for webhook responses which won't change on repeat
var errPermanent = errors.New("permanent failure")

// Slack posts messages to an incoming webhook
type Slack struct {
	webhook string
	client  *http.Client
	retries int
}

// Message is a Slack message made of blocks
type Message struct {
	Blocks []Block `json:"blocks"`
}

// Block is a single message block
type Block struct {
	Type   string `json:"type"`
	Text   *Text  `json:"text,omitempty"`
	Fields []Text `json:"fields,omitempty"`
}

// Text is a text object of a block
type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// NewSlack makes a webhook client, retries applies to network errors and 5xx/429 responses
func NewSlack(webhook string, timeout time.Duration, retries int) *Slack {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if retries <= 0 {
		retries = 3
	}
	return &Slack{webhook: webhook, client: &http.Client{Timeout: timeout}, retries: retries}
}

// FormatCFP renders a CFP as a message: header, deadline and dates, location and topics, links
func FormatCFP(c domain.CFP) Message {
	deadline := "No deadline specified"
	if c.SubmissionDeadline != nil {
		deadline = c.SubmissionDeadline.Format("January 02, 2006")
	}

	dates := "Dates not specified"
	if c.ConferenceStartDate != nil && c.ConferenceEndDate != nil {
		if c.ConferenceStartDate.Equal(*c.ConferenceEndDate) {
			dates = c.ConferenceStartDate.Format("January 02, 2006")
		} else {
			dates = c.ConferenceStartDate.Format("January 02") + " - " + c.ConferenceEndDate.Format("January 02, 2006")
		}
	}

	location := "Location not specified"
	if c.Location != "" {
		location = c.Location
	}
	if c.IsVirtual {
		location = "Virtual Event"
	}

	topics := "No topics specified"
	if len(c.Topics) > 0 {
		topics = strings.Join(c.Topics, ", ")
	}

	msg := Message{Blocks: []Block{
		{Type: "header", Text: &Text{Type: "plain_text", Text: "🎤 New CFP: " + c.ConferenceName, Emoji: true}},
		{Type: "section", Fields: []Text{
			{Type: "mrkdwn", Text: "*Submission Deadline:*\n" + deadline},
			{Type: "mrkdwn", Text: "*Conference Dates:*\n" + dates},
		}},
		{Type: "section", Fields: []Text{
			{Type: "mrkdwn", Text: "*Location:*\n" + location},
			{Type: "mrkdwn", Text: "*Topics:*\n" + topics},
		}},
	}}
	if c.SubmissionURL != "" {
		msg.Blocks = append(msg.Blocks, Block{Type: "section",
			Text: &Text{Type: "mrkdwn", Text: fmt.Sprintf("*Submission URL:* <%s|Submit your proposal>", c.SubmissionURL)}})
	}
	if c.SourceURL != "" {
		msg.Blocks = append(msg.Blocks, Block{Type: "section",
			Text: &Text{Type: "mrkdwn", Text: fmt.Sprintf("*Conference Website:* <%s|Learn more>", c.SourceURL)}})
	}
	return msg
}

// Post sends a message to the webhook
func (s *Slack) Post(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	retrier := repeater.NewBackoff(s.retries, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	if err := retrier.Do(ctx, func() error { return s.post(ctx, body) }, errPermanent); err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	return nil
}

func (s *Slack) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %w", errPermanent, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	err = fmt.Errorf("webhook status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", errPermanent, err)
	}
	lgr.Printf("[DEBUG] slack webhook failed, will retry: %v", err)
	return err
}
