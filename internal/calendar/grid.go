package calendar

import "time"

// Month identifies a displayed month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing k.
func MonthOf(k DateKey) Month {
	return Month{Year: k.Year, Month: time.Month(k.Month)}
}

// Add returns the month n months away.
func (m Month) Add(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Title is the header text, e.g. "March 2024".
func (m Month) Title() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Contains reports whether k falls inside the month.
func (m Month) Contains(k DateKey) bool {
	return k.Year == m.Year && time.Month(k.Month) == m.Month
}

// Grid returns the weeks shown for the month, each seven days long, starting
// on firstWeekday. Days of the adjacent months fill the first and last week;
// they are ordinary keys and share storage with their own month.
func (m Month) Grid(firstWeekday time.Weekday) [][7]DateKey {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(firstWeekday) + 7) % 7
	start := first.AddDate(0, 0, -offset)

	last := DaysIn(m.Year, m.Month)
	weeks := (offset + last + 6) / 7

	grid := make([][7]DateKey, weeks)
	for w := range grid {
		for d := range 7 {
			grid[w][d] = KeyOf(start.AddDate(0, 0, w*7+d))
		}
	}
	return grid
}

// WeekdayNames returns short weekday headers beginning at firstWeekday.
func WeekdayNames(firstWeekday time.Weekday) [7]string {
	var names [7]string
	for i := range names {
		names[i] = time.Weekday((int(firstWeekday) + i) % 7).String()[:3]
	}
	return names
}
