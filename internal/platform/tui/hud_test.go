package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gunpong/internal/core"
	"github.com/vovakirdan/gunpong/internal/pong"
)

// findText returns the first row containing text, or -1.
func findText(s *core.Screen, text string) int {
	for y := range s.Height() {
		if strings.Contains(s.Row(y), text) {
			return y
		}
	}
	return -1
}

func TestGunLabel(t *testing.T) {
	tests := []struct {
		side   pong.Side
		gun    pong.GunState
		frozen bool
		want   string
	}{
		{pong.Left, pong.GunState{Ready: true}, false, "Left Gun: Ready"},
		{pong.Right, pong.GunState{ReadyAt: time.Unix(3, 0)}, false, "Right Gun: Cooldown"},
		{pong.Right, pong.GunState{Ready: true}, true, "Right Gun: Ready [FROZEN]"},
	}

	for _, tc := range tests {
		if got := gunLabel(tc.side, tc.gun, tc.frozen); got != tc.want {
			t.Errorf("gunLabel() = %q, expected %q", got, tc.want)
		}
	}
}

func TestHUDTexts(t *testing.T) {
	if got := scoreText(pong.MatchState{LeftScore: 3, RightScore: 1}); got != "3 : 1" {
		t.Errorf("scoreText() = %q", got)
	}
	if got := modeLabel(pong.OneVsAI); got != "Mode: 1vAI" {
		t.Errorf("modeLabel() = %q", got)
	}
	if got := winnerText(pong.Right); got != "Right Player Wins!" {
		t.Errorf("winnerText() = %q", got)
	}
}

func TestDrawHUD(t *testing.T) {
	ready := pong.GunState{Ready: true}
	cooling := pong.GunState{ReadyAt: time.Unix(3, 0)}

	tests := []struct {
		name    string
		hud     HUD
		want    []string
		notWant []string
	}{
		{
			name: "start screen",
			hud: HUD{
				Frame:   pong.Frame{State: pong.MatchState{Phase: pong.PhaseIdle}},
				LeftGun: ready, RightGun: ready,
			},
			want:    []string{"0 : 0", "Left Gun: Ready", "Right Gun: Ready", "Mode: 1v1", "GUNPONG"},
			notWant: []string{"PAUSED"},
		},
		{
			name: "running",
			hud: HUD{
				Frame: pong.Frame{
					LeftFrozen: true,
					State:      pong.MatchState{Phase: pong.PhaseRunning, Mode: pong.OneVsAI, LeftScore: 2, RightScore: 4},
				},
				LeftGun: cooling, RightGun: ready,
				Started: true,
			},
			want:    []string{"2 : 4", "Left Gun: Cooldown [FROZEN]", "Mode: 1vAI"},
			notWant: []string{"PAUSED", "GUNPONG", "Wins!"},
		},
		{
			name: "paused",
			hud: HUD{
				Frame:   pong.Frame{State: pong.MatchState{Phase: pong.PhaseIdle, LeftScore: 1}},
				LeftGun: ready, RightGun: ready,
				Started: true,
			},
			want: []string{"PAUSED", "Press Space to resume"},
		},
		{
			name: "finished",
			hud: HUD{
				Frame: pong.Frame{State: pong.MatchState{
					Phase: pong.PhaseFinished, LeftScore: 5, RightScore: 3,
					Winner: pong.Left, HasWinner: true,
				}},
				LeftGun: ready, RightGun: ready,
				Started: true,
			},
			want:    []string{"Left Player Wins!", "5 : 3  |  Press R to play again"},
			notWant: []string{"PAUSED"},
		},
		{
			name: "status line",
			hud: HUD{
				Frame:   pong.Frame{State: pong.MatchState{Phase: pong.PhaseRunning}},
				LeftGun: ready, RightGun: ready,
				Status: "Frame copied",
			},
			want: []string{"Frame copied"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen := core.NewScreen(80, 23)
			DrawHUD(screen, tc.hud)

			for _, s := range tc.want {
				if findText(screen, s) < 0 {
					t.Errorf("HUD is missing %q:\n%s", s, screen.String())
				}
			}
			for _, s := range tc.notWant {
				if findText(screen, s) >= 0 {
					t.Errorf("HUD should not show %q", s)
				}
			}
		})
	}
}

func TestDrawHUDLayout(t *testing.T) {
	screen := core.NewScreen(80, 23)
	DrawHUD(screen, HUD{
		Frame:   pong.Frame{State: pong.MatchState{Phase: pong.PhaseRunning, LeftScore: 1, RightScore: 2}},
		LeftGun: pong.GunState{Ready: true}, RightGun: pong.GunState{Ready: true},
	})

	if y := findText(screen, "1 : 2"); y != 0 {
		t.Errorf("score on row %d, expected 0", y)
	}
	if y := findText(screen, "Mode: 1v1"); y != 1 {
		t.Errorf("mode on row %d, expected 1", y)
	}
	if !strings.HasPrefix(screen.Row(0), " Left Gun") {
		t.Errorf("left gun label should start the first row: %q", screen.Row(0))
	}
	if !strings.HasSuffix(screen.Row(0), "Right Gun: Ready ") {
		t.Errorf("right gun label should end the first row: %q", screen.Row(0))
	}
}
