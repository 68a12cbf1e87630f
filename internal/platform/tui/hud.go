package tui

import (
	"fmt"

	"github.com/vovakirdan/gunpong/internal/core"
	"github.com/vovakirdan/gunpong/internal/pong"
)

// HUDHeight is the number of rows above the arena box.
const HUDHeight = 2

// HUD is everything the heads-up display shows besides the arena.
type HUD struct {
	Frame    pong.Frame
	LeftGun  pong.GunState
	RightGun pong.GunState
	Started  bool   // The current match has run at least once
	Status   string // Transient platform message, e.g. a saved screenshot
}

func scoreText(s pong.MatchState) string {
	return fmt.Sprintf("%d : %d", s.LeftScore, s.RightScore)
}

func gunLabel(side pong.Side, gun pong.GunState, frozen bool) string {
	state := "Ready"
	if !gun.Ready {
		state = "Cooldown"
	}
	label := fmt.Sprintf("%s Gun: %s", side, state)
	if frozen {
		label += " [FROZEN]"
	}
	return label
}

func modeLabel(m pong.Mode) string {
	return "Mode: " + m.String()
}

func winnerText(side pong.Side) string {
	return fmt.Sprintf("%s Player Wins!", side)
}

// DrawHUD draws the score line, the mode line and any centered message.
func DrawHUD(dst *core.Screen, h HUD) {
	st := h.Frame.State
	w := dst.Width()

	dst.DrawRect(core.NewRect(0, 0, w, HUDHeight), ' ', core.ColorDefault)

	left := gunLabel(pong.Left, h.LeftGun, h.Frame.LeftFrozen)
	right := gunLabel(pong.Right, h.RightGun, h.Frame.RightFrozen)
	dst.DrawText(1, 0, left, gunColor(h.LeftGun, h.Frame.LeftFrozen))
	dst.DrawText(w-len([]rune(right))-1, 0, right, gunColor(h.RightGun, h.Frame.RightFrozen))
	dst.DrawTextCentered(0, scoreText(st), core.ColorWhite)

	if h.Status != "" {
		dst.DrawText(1, 1, h.Status, core.ColorGray)
	}
	mode := modeLabel(st.Mode)
	dst.DrawText(w-len([]rune(mode))-1, 1, mode, core.ColorDefault)

	switch {
	case st.Phase == pong.PhaseFinished && st.HasWinner:
		drawCenteredMessage(dst, winnerText(st.Winner), scoreText(st)+"  |  Press R to play again")
	case st.Phase == pong.PhaseIdle && h.Started:
		drawCenteredMessage(dst, "PAUSED", "Press Space to resume")
	case st.Phase == pong.PhaseIdle:
		drawCenteredMessage(dst, "GUNPONG", "Press Space to start  |  M to switch mode")
	}
}

func gunColor(gun pong.GunState, frozen bool) core.Color {
	switch {
	case frozen:
		return core.ColorCyan
	case gun.Ready:
		return core.ColorGreen
	default:
		return core.ColorYellow
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW, subW := len([]rune(title)), len([]rune(subtitle))
	boxW := max(titleW, subW) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorYellow)
	dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle, core.ColorDefault)
}
