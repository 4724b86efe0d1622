package sqlite

import (
	"strings"
	"testing"
	"time"

	"animal-shelter-manager/internal/domain/animals"
)

var testNow = time.Date(2023, 11, 16, 12, 0, 0, 0, time.UTC)

func TestBuildFilterWhereEmpty(t *testing.T) {
	where, args := buildFilterWhere(animals.Filter{}, testNow)
	if where != "" || len(args) != 0 {
		t.Fatalf("where = %q args = %v, want no constraints", where, args)
	}
}

func TestBuildFilterWhereSelections(t *testing.T) {
	f := animals.Filter{
		Statuses: []animals.Status{animals.StatusAvailable, animals.StatusRequested},
		Sexes:    []animals.Sex{animals.SexFemale},
		Breeds:   map[string][]string{"dog": {"mixed", "beagle"}},
		Admitted: animals.PeriodThisMonth,
	}

	where, args := buildFilterWhere(f, testNow)

	if !strings.Contains(where, "status IN (?,?)") {
		t.Fatalf("missing status clause: %q", where)
	}
	if !strings.Contains(where, "sex IN (?)") {
		t.Fatalf("missing sex clause: %q", where)
	}
	if !strings.Contains(where, "species = ? AND breed IN (?,?)") {
		t.Fatalf("missing breed clause: %q", where)
	}
	if !strings.Contains(where, "admission_timestamp >= ?") {
		t.Fatalf("missing admission clause: %q", where)
	}
	if len(args) != 7 {
		t.Fatalf("args = %d, want 7 (%v)", len(args), args)
	}

	start, _ := animals.PeriodThisMonth.Start(testNow)
	if args[len(args)-1] != start {
		t.Fatalf("last arg = %v, want admission bound %d", args[len(args)-1], start)
	}
}

func TestBuildFilterWhereEmptySelectionMatchesNothing(t *testing.T) {
	for _, f := range []animals.Filter{
		{Statuses: []animals.Status{}},
		{Sexes: []animals.Sex{}},
		{Breeds: map[string][]string{}},
	} {
		where, args := buildFilterWhere(f, testNow)
		if where != "1=0" {
			t.Fatalf("where = %q, want 1=0", where)
		}
		if len(args) != 0 {
			t.Fatalf("args = %v, want none", args)
		}
	}
}

func TestBuildFilterWhereAdoptedUsesSubquery(t *testing.T) {
	where, args := buildFilterWhere(animals.Filter{Adopted: animals.PeriodThisYear}, testNow)

	if !strings.Contains(where, "EXISTS") || !strings.Contains(where, "adoption_requests") {
		t.Fatalf("adopted window must use the request subquery: %q", where)
	}
	if !strings.Contains(where, "'approved'") {
		t.Fatalf("subquery must restrict to approved requests: %q", where)
	}
	start, _ := animals.PeriodThisYear.Start(testNow)
	if len(args) != 1 || args[0] != start {
		t.Fatalf("args = %v, want [%d]", args, start)
	}
}
