package animals

import "time"

// Period is a choose-one date window relative to now. Weeks start on Monday.
type Period string

const (
	PeriodAllTime   Period = "all_time"
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "this_week"
	PeriodThisMonth Period = "this_month"
	PeriodThisYear  Period = "this_year"
)

func (p Period) Valid() bool {
	switch p {
	case "", PeriodAllTime, PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodThisYear:
		return true
	default:
		return false
	}
}

// Start returns the window's lower bound in unix seconds.
// ok is false when the period imposes no bound ("" or all_time).
func (p Period) Start(now time.Time) (int64, bool) {
	now = now.UTC()
	y, m, d := now.Date()
	switch p {
	case PeriodToday:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), true
	case PeriodThisWeek:
		days := (int(now.Weekday()) + 6) % 7
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days).Unix(), true
	case PeriodThisMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).Unix(), true
	case PeriodThisYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), true
	default:
		return 0, false
	}
}

// Filter is one typed field per filter key instead of a loose map.
// For the multi-value keys, nil means "no constraint on this key" while a
// non-nil empty slice/map means "match nothing" (a selection with every
// option unticked).
type Filter struct {
	Statuses []Status
	Sexes    []Sex

	// Breeds maps species to the breeds selected under it.
	Breeds map[string][]string

	// Admitted bounds the admission timestamp.
	Admitted Period

	// Adopted bounds the adoption timestamp of the animal's approved
	// request; only storage layers with request access can apply it.
	Adopted Period
}

// Matches applies every selection that the animal record alone can answer.
// The Adopted window needs adoption-request data and is applied by the store.
func (f Filter) Matches(a Animal, now time.Time) bool {
	if f.Statuses != nil {
		if !containsStatus(f.Statuses, a.Status) {
			return false
		}
	}
	if f.Sexes != nil {
		if !containsSex(f.Sexes, a.Sex) {
			return false
		}
	}
	if f.Breeds != nil {
		if !matchesBreeds(f.Breeds, a.Species, a.Breed) {
			return false
		}
	}
	if start, ok := f.Admitted.Start(now); ok && a.AdmittedAt < start {
		return false
	}
	return true
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsSex(list []Sex, s Sex) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func matchesBreeds(selected map[string][]string, species, breed string) bool {
	breeds, ok := selected[species]
	if !ok {
		return false
	}
	for _, b := range breeds {
		if b == breed {
			return true
		}
	}
	return false
}
