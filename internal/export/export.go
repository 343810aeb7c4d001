// Package export writes a timesheet as CSV or JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rpggio/timesheets/internal/domain/timesheet"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for formats other than csv and json.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv" or "json" in any case. Empty defaults to CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Filename returns a download name for ts in format f.
func (f Format) Filename(ts timesheet.Timesheet) string {
	return fmt.Sprintf("timesheet-week-%d.%s", ts.Week, f)
}

// Write encodes ts to w in format f.
func Write(w io.Writer, f Format, ts timesheet.Timesheet, exportedAt time.Time) error {
	switch f {
	case FormatCSV:
		return ToCSV(w, ts)
	case FormatJSON:
		return ToJSON(w, ts, exportedAt)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
