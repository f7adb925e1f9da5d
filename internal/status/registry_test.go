package status

import (
	"reflect"
	"testing"
)

func TestDefaultRegistry_Validity(t *testing.T) {
	reg := DefaultRegistry()

	for _, s := range []string{"waiting", "in_surgery", "recovering", "postponed", "returning"} {
		if !reg.IsValid(KindPatient, s) {
			t.Fatalf("expected %q to be a valid patient status", s)
		}
	}
	if reg.IsValid(KindPatient, "completed") {
		t.Fatalf("completed must not be a patient status")
	}
	if reg.IsValid(KindSurgery, "postponed") {
		t.Fatalf("postponed must not be a surgery status")
	}
	if reg.IsValid(Kind("device"), "waiting") {
		t.Fatalf("unknown kinds must validate nothing")
	}
}

func TestDefaultRegistry_Categories(t *testing.T) {
	reg := DefaultRegistry()

	cat, ok := reg.Category(KindPatient, "in_surgery")
	if !ok || cat != CategoryInProgress {
		t.Fatalf("expected in_surgery to be in-progress, got %v ok=%v", cat, ok)
	}
	cat, ok = reg.Category(KindSurgery, "cancelled")
	if !ok || cat != CategoryNotStarted {
		t.Fatalf("expected cancelled to be not-started, got %v ok=%v", cat, ok)
	}
	if _, ok := reg.Category(KindSurgery, "nonsense"); ok {
		t.Fatalf("unknown status must not resolve a category")
	}
}

func TestDefaultRegistry_ThaiLabelFallback(t *testing.T) {
	reg := DefaultRegistry()

	if got := reg.ThaiLabel(KindPatient, "waiting"); got != "รอผ่าตัด" {
		t.Fatalf("unexpected label for waiting: %q", got)
	}
	if got := reg.ThaiLabel(KindPatient, "mystery"); got != "mystery" {
		t.Fatalf("expected raw fallback for unknown status, got %q", got)
	}
}

func TestRegistry_StatusesSorted(t *testing.T) {
	reg := DefaultRegistry()

	want := []string{"in_surgery", "postponed", "recovering", "returning", "waiting"}
	if got := reg.Statuses(KindPatient); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
