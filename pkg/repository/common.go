package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// errCritical is the termination error for retries, matched by criticalError
var errCritical = errors.New("critical")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is reports criticalError as errCritical, used by repeater to stop
func (e *criticalError) Is(target error) bool { return target == errCritical }

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// withLockRetry runs fn retrying SQLite lock errors, any other error is returned right away
func withLockRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err
		}
		return &criticalError{err: err}
	}, errCritical)

	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}

// tsLayout is fixed-width so stored timestamps compare correctly as text
const tsLayout = "2006-01-02 15:04:05.000"

// timestampSQL is a UTC time stored as text
type timestampSQL time.Time

// Value implements driver.Valuer
func (t timestampSQL) Value() (driver.Value, error) {
	return time.Time(t).UTC().Format(tsLayout), nil
}

// Scan implements sql.Scanner, accepts text in storage or SQLite default formats and native time values
func (t *timestampSQL) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestampSQL(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t = timestampSQL(time.Time{})
		return nil
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *timestampSQL) parse(s string) error {
	for _, layout := range []string{tsLayout, time.DateTime, time.RFC3339Nano} {
		if ts, err := time.Parse(layout, s); err == nil {
			*t = timestampSQL(ts.UTC())
			return nil
		}
	}
	return fmt.Errorf("can't parse timestamp %q", s)
}
