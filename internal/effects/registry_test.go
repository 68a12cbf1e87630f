package effects

import (
	"testing"
	"time"
)

var t0 = time.Unix(1_700_000_000, 0)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestRegistryFiresAtDeadline(t *testing.T) {
	r := NewRegistry[string](PolicySupersede)
	r.Arm("gun", at(3000))

	if !r.Pending("gun") {
		t.Fatal("gun should be pending after Arm")
	}
	if got := r.Advance(at(2999)); len(got) != 0 {
		t.Errorf("Advance before deadline fired %v", got)
	}
	if rem := r.Remaining("gun", at(1000)); rem != 2*time.Second {
		t.Errorf("Remaining() = %v, expected 2s", rem)
	}

	got := r.Advance(at(3000))
	if len(got) != 1 || got[0] != "gun" {
		t.Fatalf("Advance at deadline = %v, expected [gun]", got)
	}
	if r.Pending("gun") {
		t.Error("gun should not be pending after firing")
	}
	if got := r.Advance(at(10000)); len(got) != 0 {
		t.Errorf("a fired key should not fire again, got %v", got)
	}
}

func TestRegistryOrdersByDeadline(t *testing.T) {
	r := NewRegistry[string](PolicySupersede)
	r.Arm("c", at(300))
	r.Arm("a", at(100))
	r.Arm("b", at(200))
	r.Arm("a2", at(100)) // tie with a, armed later

	got := r.Advance(at(1000))
	expected := []string{"a", "a2", "b", "c"}
	if len(got) != len(expected) {
		t.Fatalf("Advance() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Advance()[%d] = %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestRegistryRearmPolicies(t *testing.T) {
	// Hit at 0 freezes until 5000; a second hit at 3000 should last until 8000.
	tests := []struct {
		name        string
		policy      Policy
		firesAt5000 bool
		deadline    time.Time
	}{
		{"supersede extends", PolicySupersede, false, at(8000)},
		{"legacy clears early", PolicyLegacy, true, at(5000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry[string](tc.policy)
			r.Arm("freeze", at(5000))
			r.Arm("freeze", at(8000))

			if d, ok := r.Deadline("freeze"); !ok || !d.Equal(tc.deadline) {
				t.Errorf("Deadline() = %v, %v; expected %v", d, ok, tc.deadline)
			}

			fired := len(r.Advance(at(5000))) == 1
			if fired != tc.firesAt5000 {
				t.Errorf("fired at 5000 = %v, expected %v", fired, tc.firesAt5000)
			}

			// Both policies must have fired by the time the later deadline passes.
			late := r.Advance(at(8000))
			if !tc.firesAt5000 && len(late) != 1 {
				t.Errorf("supersede should fire once at 8000, got %v", late)
			}
			if r.Pending("freeze") {
				t.Error("nothing should be pending after 8000")
			}
		})
	}
}

func TestRegistryLegacyRefiresAfterRearm(t *testing.T) {
	// Legacy keeps the stale 8000 timer alive across a fresh arm at 6000,
	// so it fires and cuts the 11000 effect short.
	r := NewRegistry[string](PolicyLegacy)
	r.Arm("freeze", at(5000))
	r.Arm("freeze", at(8000))
	r.Advance(at(5000))

	r.Arm("freeze", at(11000))
	if got := r.Advance(at(8000)); len(got) != 1 {
		t.Errorf("stale legacy timer should fire at 8000, got %v", got)
	}
	if !r.Pending("freeze") {
		t.Error("the 11000 timer should still be pending")
	}
}

func TestRegistryShift(t *testing.T) {
	r := NewRegistry[int](PolicySupersede)
	r.Arm(1, at(1000))
	r.Arm(2, at(2000))

	r.Shift(500 * time.Millisecond)

	if got := r.Advance(at(1499)); len(got) != 0 {
		t.Errorf("shifted deadline fired early: %v", got)
	}
	if got := r.Advance(at(1500)); len(got) != 1 || got[0] != 1 {
		t.Errorf("Advance(1500) = %v, expected [1]", got)
	}
	if d, _ := r.Deadline(2); !d.Equal(at(2500)) {
		t.Errorf("Deadline(2) = %v, expected %v", d, at(2500))
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry[string](PolicyLegacy)
	r.Arm("a", at(10))
	r.Arm("a", at(20))
	r.Arm("b", at(30))

	if r.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", r.Len())
	}

	r.Clear()

	if r.Len() != 0 || r.Pending("a") {
		t.Error("Clear should drop all pending keys")
	}
	if got := r.Advance(at(100)); len(got) != 0 {
		t.Errorf("cleared registry fired %v", got)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicySupersede, false},
		{"supersede", PolicySupersede, false},
		{"legacy", PolicyLegacy, false},
		{"coalesce", PolicySupersede, true},
	}

	for _, tc := range tests {
		got, err := ParsePolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	if PolicyLegacy.String() != "legacy" {
		t.Errorf("String() = %q", PolicyLegacy.String())
	}
}
