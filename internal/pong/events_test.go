package pong

import "testing"

func TestMultiSink(t *testing.T) {
	a := &recorder{}
	var seen []EventKind
	b := SinkFunc(func(e Event) { seen = append(seen, e.Kind) })

	sink := MultiSink{a, nil, b}
	sink.Notify(Event{Kind: EventShotFired, Side: Left})
	sink.Notify(Event{Kind: EventGunReady, Side: Left})

	if len(a.events) != 2 || len(seen) != 2 {
		t.Fatalf("sinks saw %d and %d events, expected 2 each", len(a.events), len(seen))
	}
	if seen[1] != EventGunReady {
		t.Errorf("second event = %v, expected GunReady", seen[1])
	}
}

func TestEventStrings(t *testing.T) {
	e := Event{Kind: EventMatchWon, Side: Right, LeftScore: 3, RightScore: 5}
	if got := e.String(); got != "MatchWon(Right) 3:5" {
		t.Errorf("String() = %q", got)
	}

	tests := []struct {
		got, want string
	}{
		{Left.String(), "Left"},
		{Right.Opposite().String(), "Left"},
		{OneVsAI.String(), "1vAI"},
		{OneVsOne.String(), "1v1"},
		{PhaseFinished.String(), "Finished"},
		{EventUnfrozen.String(), "Unfrozen"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("got %q, expected %q", tc.got, tc.want)
		}
	}
}
