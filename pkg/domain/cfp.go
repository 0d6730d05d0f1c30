package domain

import (
	"fmt"
	"strings"
	"time"
)

// CFP represents a normalized call for papers, independent of the source it came from
type CFP struct {
	ID                  int64
	ConferenceName      string
	SubmissionDeadline  *time.Time
	ConferenceStartDate *time.Time
	ConferenceEndDate   *time.Time
	Location            string
	IsVirtual           bool
	Topics              []string
	SubmissionURL       string
	SourceURL           string
	Source              string // name of the adapter produced the record
	Description         string
	CreatedAt           time.Time // set by storage
	UpdatedAt           time.Time // set by storage
}

// AlignDates makes start and end dates equal when only one of them is known
func (c *CFP) AlignDates() {
	switch {
	case c.ConferenceStartDate != nil && c.ConferenceEndDate == nil:
		end := *c.ConferenceStartDate
		c.ConferenceEndDate = &end
	case c.ConferenceStartDate == nil && c.ConferenceEndDate != nil:
		start := *c.ConferenceEndDate
		c.ConferenceStartDate = &start
	}
}

// Validate checks fields required for a record to be stored
func (c *CFP) Validate() error {
	if strings.TrimSpace(c.ConferenceName) == "" {
		return fmt.Errorf("conference name is empty")
	}
	if c.Source == "" {
		return fmt.Errorf("source is empty for %q", c.ConferenceName)
	}
	return nil
}

// Apply copies all normalized fields from other, keeping identity and storage timestamps intact
func (c *CFP) Apply(other CFP) {
	c.ConferenceName = other.ConferenceName
	c.SubmissionDeadline = other.SubmissionDeadline
	c.ConferenceStartDate = other.ConferenceStartDate
	c.ConferenceEndDate = other.ConferenceEndDate
	c.Location = other.Location
	c.IsVirtual = other.IsVirtual
	c.Topics = other.Topics
	c.SubmissionURL = other.SubmissionURL
	c.SourceURL = other.SourceURL
	c.Source = other.Source
	c.Description = other.Description
}

// DedupKey identifies a stored CFP matching an incoming one.
// Deadline nil means the record has no known submission deadline,
// empty Source means source is not part of the key.
type DedupKey struct {
	ConferenceName string
	Deadline       *time.Time
	Source         string
}

// DefaultKey returns (name, deadline) when the deadline is known and (name, source) otherwise
func DefaultKey(c CFP) DedupKey {
	if c.SubmissionDeadline != nil {
		return DedupKey{ConferenceName: c.ConferenceName, Deadline: c.SubmissionDeadline}
	}
	return DedupKey{ConferenceName: c.ConferenceName, Source: c.Source}
}

// String returns a printable form of the key, used in logs and to match keys in memory
func (k DedupKey) String() string {
	deadline := "-"
	if k.Deadline != nil {
		deadline = k.Deadline.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s|%s|%s", k.ConferenceName, deadline, k.Source)
}

// Date returns a pointer to the calendar date y-m-d at midnight UTC
func Date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
