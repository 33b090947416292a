// Package orders fetches the order list from the YBS portal and carries
// results back to the UI loop.
package orders

import (
	"strings"

	"github.com/zjrosen/printcal/internal/calendar"
)

// Record is one order row scraped from the manage page.
type Record struct {
	OrderNumber string `json:"order_number"`
	Company     string `json:"company"`
}

// Assignment converts the record into a calendar assignment.
func (r Record) Assignment() calendar.Assignment {
	return calendar.NewAssignment(r.OrderNumber, r.Company)
}

// Matches reports whether the order number or company contains query,
// ignoring case. A blank query matches everything.
func (r Record) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.OrderNumber), q) ||
		strings.Contains(strings.ToLower(r.Company), q)
}

// Filter keeps the records matching query.
func Filter(records []Record, query string) []Record {
	if strings.TrimSpace(query) == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}
