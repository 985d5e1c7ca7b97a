package baseyear

import "time"

// MonthDay is a calendar position with the year ignored.
type MonthDay struct {
	Month time.Month
	Day   int
}

// Window is an inclusive month/day range wholly contained in one calendar
// year (start <= end).
type Window struct {
	Start MonthDay
	End   MonthDay
}

// The two digitação windows. They differ by ten days and are not
// interchangeable: user-level resolution opens on Nov 7, school-level on
// Nov 17. Both were lifted verbatim from the legacy rules.
var (
	UserWindow   = Window{Start: MonthDay{time.November, 7}, End: MonthDay{time.December, 31}}
	SchoolWindow = Window{Start: MonthDay{time.November, 17}, End: MonthDay{time.December, 31}}
)

// FallbackYear computes the default base year for a given day: inside the
// window the registration period already belongs to the next school year.
func FallbackYear(today time.Time, w Window) int {
	md := int(today.Month())*100 + today.Day()
	start := int(w.Start.Month)*100 + w.Start.Day
	end := int(w.End.Month)*100 + w.End.Day
	if md >= start && md <= end {
		return today.Year() + 1
	}
	return today.Year()
}
