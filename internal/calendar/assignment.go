package calendar

import "strings"

// Assignment is one order placed on a day. Two assignments are the same
// order when both fields match.
type Assignment struct {
	OrderNumber string
	Company     string
}

// NewAssignment builds an assignment from up to two values; missing values
// become empty strings and extra values are ignored.
func NewAssignment(values ...string) Assignment {
	var a Assignment
	if len(values) > 0 {
		a.OrderNumber = values[0]
	}
	if len(values) > 1 {
		a.Company = values[1]
	}
	return a
}

// Label is the display text for the assignment.
func (a Assignment) Label() string {
	num := strings.TrimSpace(a.OrderNumber)
	company := strings.TrimSpace(a.Company)
	switch {
	case num != "" && company != "":
		return num + " - " + company
	case num != "":
		return num
	case company != "":
		return company
	default:
		return "Unnamed order"
	}
}

// Describe is the form used inside sentences, e.g. "order 100 (Acme)".
func (a Assignment) Describe() string {
	phrase := "order"
	if num := strings.TrimSpace(a.OrderNumber); num != "" {
		phrase += " " + num
	}
	if company := strings.TrimSpace(a.Company); company != "" {
		phrase += " (" + company + ")"
	}
	return phrase
}

// Matches reports whether the assignment's label contains the query,
// ignoring case.
func (a Assignment) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.OrderNumber), query) ||
		strings.Contains(strings.ToLower(a.Company), query)
}

func indexOf(list []Assignment, a Assignment) int {
	for i, x := range list {
		if x == a {
			return i
		}
	}
	return -1
}
