package dates

// WeekPathPrefix is the canonical week page path prefix. The routing table
// depends on this exact shape; changing it requires coordinating the routes
// in internal/app.
const WeekPathPrefix = "/calendar/week/"

// WeekStartDate returns the Monday (YYYY-MM-DD) of the week containing the
// given calendar date.
func WeekStartDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return WeekRange(t, nil).Start.Format(DateLayout), nil
}

// WeekLink shifts a week-start date by offsetDays (typically ±7) and renders
// the canonical week page path for the result. The shifted date is
// re-normalized to its own Monday, so the function stays correct even when
// handed a mid-week date, and month/year boundaries roll over naturally.
func WeekLink(weekStart string, offsetDays int) (string, error) {
	t, err := ParseDate(weekStart)
	if err != nil {
		return "", err
	}
	monday := WeekRange(t.AddDate(0, 0, offsetDays), nil).Start
	return WeekPathPrefix + monday.Format(DateLayout), nil
}
