// Package dateutils provides date parsing for the receipt date format.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/ticket-csv/internal/models"
)

// ParseTicketDate parses a DD/MM/YYYY receipt date.
func ParseTicketDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	t, err := time.Parse(models.TicketDateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// Before reports whether date a precedes date b, both in DD/MM/YYYY.
// Unparseable dates sort before parseable ones so they surface at the
// top of reports instead of disappearing.
func Before(a, b string) bool {
	ta, errA := ParseTicketDate(a)
	tb, errB := ParseTicketDate(b)
	if errA != nil || errB != nil {
		if errA != nil && errB != nil {
			return a < b
		}
		return errA != nil
	}
	return ta.Before(tb)
}
