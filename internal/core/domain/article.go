package domain

import (
	"fmt"
	"time"
)

// Article represents one collected news item.
// It is the canonical representation of a row in the collector's
// per-window table. Articles are never mutated in place; each pipeline
// stage emits derived records carrying the original fields forward.
type Article struct {
	// ID is the collector-assigned news identifier, unique per window.
	ID string

	// Date is the publication date.
	Date time.Time

	// Outlet is the publishing media outlet's name.
	Outlet string

	// Title is the article headline. Cleaned in place by the Normalizer
	// output table; raw in the collector's table.
	Title string

	// Keywords are the collector-extracted topic keywords.
	Keywords []string

	// Features are the weighted feature tokens (top 50 by weight)
	// extracted by the collector.
	Features []string

	// URL is the source link.
	URL string
}

// windowTokenLayout is the date layout used inside window tokens.
const windowTokenLayout = "20060102"

// Window is an inclusive date range identifying one analysis batch.
// Its token (YYYYMMDD-YYYYMMDD) names every stage file for the run.
type Window struct {
	// Start is the first day of the window.
	Start time.Time

	// End is the last day of the window.
	End time.Time
}

// ParseWindow parses a YYYYMMDD-YYYYMMDD token into a Window.
func ParseWindow(token string) (Window, error) {
	if len(token) != 17 || token[8] != '-' {
		return Window{}, fmt.Errorf("%w: window token %q (want YYYYMMDD-YYYYMMDD)", ErrInvalidInput, token)
	}
	start, err := time.Parse(windowTokenLayout, token[:8])
	if err != nil {
		return Window{}, fmt.Errorf("%w: window start in %q", ErrInvalidInput, token)
	}
	end, err := time.Parse(windowTokenLayout, token[9:])
	if err != nil {
		return Window{}, fmt.Errorf("%w: window end in %q", ErrInvalidInput, token)
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: window %q ends before it starts", ErrInvalidInput, token)
	}
	return Window{Start: start, End: end}, nil
}

// Token formats the window as YYYYMMDD-YYYYMMDD.
func (w Window) Token() string {
	return w.Start.Format(windowTokenLayout) + "-" + w.End.Format(windowTokenLayout)
}

// MonthlyWindows expands a YYYYMM-YYYYMM range into one Window per
// calendar month, first day through last day, in chronological order.
func MonthlyWindows(rangeToken string) ([]Window, error) {
	if len(rangeToken) != 13 || rangeToken[6] != '-' {
		return nil, fmt.Errorf("%w: range %q (want YYYYMM-YYYYMM)", ErrInvalidInput, rangeToken)
	}
	start, err := time.Parse("200601", rangeToken[:6])
	if err != nil {
		return nil, fmt.Errorf("%w: range start in %q", ErrInvalidInput, rangeToken)
	}
	end, err := time.Parse("200601", rangeToken[7:])
	if err != nil {
		return nil, fmt.Errorf("%w: range end in %q", ErrInvalidInput, rangeToken)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range %q ends before it starts", ErrInvalidInput, rangeToken)
	}

	var windows []Window
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		first := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		windows = append(windows, Window{Start: first, End: last})
	}
	return windows, nil
}
