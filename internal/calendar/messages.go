package calendar

import (
	"fmt"
	"strings"
)

// MoveMessage reports the result of placing assignments on target.
// from is nil when the assignments came from the order list.
func MoveMessage(items []Assignment, from *DateKey, target DateKey) string {
	if len(items) == 0 {
		return ""
	}
	sameDay := from != nil && *from == target
	subject := fmt.Sprintf("%d orders", len(items))
	verb := "remain"
	if len(items) == 1 {
		subject = items[0].Describe()
		verb = "remains"
	}

	switch {
	case from != nil && !sameDay:
		return fmt.Sprintf("Moved %s from %s to %s.", subject, from.Label(), target.Label())
	case sameDay:
		return fmt.Sprintf("%s %s scheduled for %s.", capitalize(subject), verb, target.Label())
	default:
		return fmt.Sprintf("Assigned %s to %s.", subject, target.Label())
	}
}

// RemovalMessage reports assignments removed from day.
func RemovalMessage(day DateKey, removed []Assignment) string {
	switch len(removed) {
	case 0:
		return ""
	case 1:
		a := removed[0]
		num := strings.TrimSpace(a.OrderNumber)
		company := strings.TrimSpace(a.Company)
		msg := "Removed order"
		if num != "" {
			msg += " " + num
		}
		if company != "" {
			if num != "" {
				msg += " (" + company + ")"
			} else {
				msg += " for " + company
			}
		}
		return msg + " from " + day.Label() + "."
	default:
		return fmt.Sprintf("Removed %d orders from %s.", len(removed), day.Label())
	}
}

// ClearMessage reports a cleared day.
func ClearMessage(day DateKey, count int) string {
	noun := "orders"
	if count == 1 {
		noun = "order"
	}
	return fmt.Sprintf("Cleared %d %s from %s.", count, noun, day.Label())
}

// DragLabel is the floating indicator text for a set of dragged items:
// the single label, or a count with a short preview.
func DragLabel(items []Assignment) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0].Label()
	}
	const preview = 3
	labels := make([]string, 0, preview)
	for _, a := range items[:min(preview, len(items))] {
		labels = append(labels, a.Label())
	}
	text := fmt.Sprintf("%d orders: %s", len(items), strings.Join(labels, ", "))
	if len(items) > preview {
		text += ", ..."
	}
	return text
}

// JoinLabels joins day labels for history messages.
func JoinLabels(days []DateKey) string {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Label()
	}
	return strings.Join(labels, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
