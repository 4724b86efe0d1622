package animals

import (
	"net/url"
	"testing"
	"time"
)

// Thursday 2023-11-16 12:00 UTC.
var testNow = time.Date(2023, 11, 16, 12, 0, 0, 0, time.UTC)

func TestPeriodStart(t *testing.T) {
	cases := []struct {
		period Period
		want   time.Time
		bound  bool
	}{
		{PeriodAllTime, time.Time{}, false},
		{Period(""), time.Time{}, false},
		{PeriodToday, time.Date(2023, 11, 16, 0, 0, 0, 0, time.UTC), true},
		{PeriodThisWeek, time.Date(2023, 11, 13, 0, 0, 0, 0, time.UTC), true}, // Monday
		{PeriodThisMonth, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), true},
		{PeriodThisYear, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}

	for _, c := range cases {
		got, ok := c.period.Start(testNow)
		if ok != c.bound {
			t.Fatalf("%s: bound = %v, want %v", c.period, ok, c.bound)
		}
		if ok && got != c.want.Unix() {
			t.Fatalf("%s: start = %d, want %d", c.period, got, c.want.Unix())
		}
	}
}

func TestPeriodStartWeekOnMonday(t *testing.T) {
	// A Monday must bound to itself, not the previous week.
	monday := time.Date(2023, 11, 13, 8, 0, 0, 0, time.UTC)
	got, ok := PeriodThisWeek.Start(monday)
	if !ok {
		t.Fatal("this_week should bound")
	}
	want := time.Date(2023, 11, 13, 0, 0, 0, 0, time.UTC).Unix()
	if got != want {
		t.Fatalf("start = %d, want %d", got, want)
	}

	// A Sunday bounds back six days.
	sunday := time.Date(2023, 11, 19, 8, 0, 0, 0, time.UTC)
	got, _ = PeriodThisWeek.Start(sunday)
	if got != want {
		t.Fatalf("sunday start = %d, want %d", got, want)
	}
}

func TestFilterNilVersusEmpty(t *testing.T) {
	a := Animal{ID: "a1", Species: "dog", Breed: "mixed", Sex: SexFemale, Status: StatusAvailable, AdmittedAt: testNow.Unix()}

	if !(Filter{}).Matches(a, testNow) {
		t.Fatal("zero filter must match everything")
	}
	if (Filter{Statuses: []Status{}}).Matches(a, testNow) {
		t.Fatal("empty status selection must match nothing")
	}
	if (Filter{Sexes: []Sex{}}).Matches(a, testNow) {
		t.Fatal("empty sex selection must match nothing")
	}
	if (Filter{Breeds: map[string][]string{}}).Matches(a, testNow) {
		t.Fatal("empty breed selection must match nothing")
	}
	if !(Filter{Statuses: []Status{StatusAvailable}}).Matches(a, testNow) {
		t.Fatal("matching status selection must match")
	}
	if (Filter{Statuses: []Status{StatusAdopted}}).Matches(a, testNow) {
		t.Fatal("non-matching status selection must not match")
	}
}

func TestFilterBreedsPerSpecies(t *testing.T) {
	f := Filter{Breeds: map[string][]string{"dog": {"mixed", "beagle"}}}

	dog := Animal{Species: "dog", Breed: "mixed"}
	cat := Animal{Species: "cat", Breed: "mixed"}

	if !f.Matches(dog, testNow) {
		t.Fatal("selected breed must match")
	}
	if f.Matches(cat, testNow) {
		t.Fatal("same breed under unselected species must not match")
	}
}

func TestFilterAdmittedWindow(t *testing.T) {
	f := Filter{Admitted: PeriodThisMonth}

	inside := Animal{AdmittedAt: time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC).Unix()}
	outside := Animal{AdmittedAt: time.Date(2023, 10, 30, 0, 0, 0, 0, time.UTC).Unix()}

	if !f.Matches(inside, testNow) {
		t.Fatal("animal admitted this month must match")
	}
	if f.Matches(outside, testNow) {
		t.Fatal("animal admitted last month must not match")
	}
}

func TestParseFilter(t *testing.T) {
	q := url.Values{}
	q.Set("status", "available,requested")
	q.Set("sex", "female")
	q.Add("breed", "dog:mixed|beagle")
	q.Add("breed", "cat:siamese")
	q.Set("admitted", "this_week")

	f, err := ParseFilter(q)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Statuses) != 2 || f.Statuses[0] != StatusAvailable {
		t.Fatalf("statuses = %v", f.Statuses)
	}
	if len(f.Sexes) != 1 || f.Sexes[0] != SexFemale {
		t.Fatalf("sexes = %v", f.Sexes)
	}
	if len(f.Breeds["dog"]) != 2 || len(f.Breeds["cat"]) != 1 {
		t.Fatalf("breeds = %v", f.Breeds)
	}
	if f.Admitted != PeriodThisWeek || f.Adopted != Period("") {
		t.Fatalf("periods = %s/%s", f.Admitted, f.Adopted)
	}
}

func TestParseFilterAbsentVersusEmpty(t *testing.T) {
	f, err := ParseFilter(url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Statuses != nil || f.Sexes != nil || f.Breeds != nil {
		t.Fatalf("absent keys must stay nil, got %+v", f)
	}

	q := url.Values{}
	q.Set("status", "")
	f, err = ParseFilter(q)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Statuses == nil || len(f.Statuses) != 0 {
		t.Fatalf("present-but-empty status must be an empty selection, got %v", f.Statuses)
	}
}

func TestParseFilterRejectsBadInput(t *testing.T) {
	for _, q := range []url.Values{
		{"status": {"flying"}},
		{"admitted": {"last_decade"}},
		{"adopted": {"never"}},
		{"breed": {"justbreednospecies"}},
	} {
		if _, err := ParseFilter(q); err == nil {
			t.Fatalf("query %v should be rejected", q)
		}
	}
}
