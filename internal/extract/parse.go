package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dao-activity-lab/internal/domain"
)

// ErrNotEpochSeconds is the cause of MalformedDataError for bad timestamps.
var ErrNotEpochSeconds = errors.New("not an integer epoch-seconds timestamp")

// ErrMissingColumn is the cause of MalformedDataError for absent columns.
var ErrMissingColumn = errors.New("required column missing")

// ErrMissingID is the cause of MalformedDataError for a blank organization ID.
var ErrMissingID = errors.New("organization id is empty")

// Bounds of a representable epoch-seconds value: years 0001 through 9999.
const (
	minEpochSeconds = -62135596800
	maxEpochSeconds = 253402300799
)

// zeroFraction matches plain decimal text whose fraction is all zeros.
var zeroFraction = regexp.MustCompile(`^[+-]?[0-9]+\.0*$`)

// parseEpoch converts an epoch-seconds cell into an instant. Decimal strings
// with a zero fraction ("1577836800.0") are accepted since CSV exports of
// nullable integer columns carry them. Exponent and hex forms are rejected.
// ok is false for an empty or NaN cell.
func parseEpoch(raw string) (t time.Time, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	// pandas writes missing nullable values as NaN
	if raw == "" || strings.EqualFold(raw, "nan") {
		return time.Time{}, false, nil
	}

	if zeroFraction.MatchString(raw) {
		raw = raw[:strings.IndexByte(raw, '.')]
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || secs < minEpochSeconds || secs > maxEpochSeconds {
		return time.Time{}, false, ErrNotEpochSeconds
	}
	return time.Unix(secs, 0).UTC(), true, nil
}

// normalizeAddress lower-cases and trims an address for joins.
func normalizeAddress(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// isFalse reports whether a boolean-ish cell is explicitly false.
func isFalse(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "f", "no":
		return true
	default:
		return false
	}
}

// tableReader reads typed values from one table and reports failures as
// MalformedDataError.
type tableReader struct {
	table *domain.Table
}

func newReader(t *domain.Table) tableReader {
	return tableReader{table: t}
}

// require checks every column exists.
func (r tableReader) require(columns ...string) error {
	for _, c := range columns {
		if !r.table.HasColumn(c) {
			return &domain.MalformedDataError{Category: r.table.Category, Column: c, Err: ErrMissingColumn}
		}
	}
	return nil
}

func (r tableReader) rows() int {
	return len(r.table.Rows)
}

func (r tableReader) str(row int, column string) string {
	return strings.TrimSpace(r.table.Value(row, column))
}

func (r tableReader) address(row int, column string) string {
	return normalizeAddress(r.table.Value(row, column))
}

// id reads an organization ID. Blank IDs are malformed.
func (r tableReader) id(row int, column string) (string, error) {
	id := r.address(row, column)
	if id == "" {
		return "", &domain.MalformedDataError{
			Category: r.table.Category,
			Row:      row + 1,
			Column:   column,
			Value:    r.table.Value(row, column),
			Err:      ErrMissingID,
		}
	}
	return id, nil
}

// time parses column at row. ok is false for an empty cell.
func (r tableReader) time(row int, column string) (time.Time, bool, error) {
	raw := r.table.Value(row, column)
	t, ok, err := parseEpoch(raw)
	if err != nil {
		return time.Time{}, false, &domain.MalformedDataError{
			Category: r.table.Category,
			Row:      row + 1,
			Column:   column,
			Value:    raw,
			Err:      err,
		}
	}
	return t, ok, nil
}
