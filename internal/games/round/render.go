package round

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/engine"
)

// FadeGlyph marks a resolved entity during its fade window.
const FadeGlyph = '*'

// DrawHUD draws the two header rows: title, player, score and time left on
// the first, a status hint on the second.
func (r *Round) DrawHUD(dst *core.Screen, title, hint string) {
	st := r.State()
	left := fmt.Sprintf(" %s", title)
	if name := r.Env.Runtime.PlayerName; name != "" {
		left += "  ·  " + name
	}
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	secs := r.Session.Countdown().RemainingSeconds(r.now)
	right := fmt.Sprintf("Score: %d   Time: %2ds ", st.Score, secs)
	timeColor := core.ColorBrightGreen
	switch {
	case secs <= 5 && st.Phase == core.PhaseActive:
		timeColor = core.ColorBrightRed
	case secs <= 10 && st.Phase == core.PhaseActive:
		timeColor = core.ColorBrightYellow
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right)), 0, right, timeColor)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
	if hint != "" {
		dst.DrawTextColored(2, 1, " "+hint+" ", core.ColorGray)
	}
}

// DrawIdle draws the rules screen shown before the start action.
func (r *Round) DrawIdle(dst *core.Screen, title string, rules []string) {
	h := dst.Height()
	top := max(core.HUDRows+1, (h-len(rules)-6)/2)

	heading := strings.ToUpper(title)
	dst.DrawTextColored((dst.Width()-len([]rune(heading)))/2, top, heading, core.ColorBrightYellow)
	for i, line := range rules {
		dst.DrawTextColored((dst.Width()-len([]rune(line)))/2, top+2+i, line, core.ColorWhite)
	}

	prompt := "Press Enter to start"
	if r.Env.Runtime.PlayerName == "" {
		prompt = "Enter your name on the welcome screen to play"
	}
	dst.DrawTextColored((dst.Width()-len([]rune(prompt)))/2, top+3+len(rules), prompt, core.ColorBrightGreen)
}

// DrawOver draws the end-of-round banner.
func (r *Round) DrawOver(dst *core.Screen) {
	r.DrawBanner(dst, "TIME'S UP!")
}

// DrawBanner draws an end-of-round banner with a custom title.
func (r *Round) DrawBanner(dst *core.Screen, title string) {
	subtitle := fmt.Sprintf("Score: %d", r.Session.Score())
	if r.Session.HandoffPending() {
		subtitle += "  -  next game soon"
	}
	dst.DrawMessage(title, subtitle)
}

// DrawEntities draws every live entity as a filled block of its glyph.
// Resolved entities are drawn as a fade marker.
func (r *Round) DrawEntities(dst *core.Screen) {
	area := r.World.Area()
	for _, e := range r.World.Entities() {
		rect := r.View.BoxToRect(e.Box(area))
		glyph, color := e.Kind.Glyph, e.Kind.Color
		if e.State == engine.Resolved {
			glyph = FadeGlyph
		}
		r.fill(dst, rect, glyph, color)
	}
}

// DrawBox draws a pixel box clipped to the play area.
func (r *Round) DrawBox(dst *core.Screen, b core.Box, glyph rune, c core.Color) {
	r.fill(dst, r.View.BoxToRect(b), glyph, c)
}

func (r *Round) fill(dst *core.Screen, rect core.Rect, glyph rune, c core.Color) {
	for y := rect.Y; y < rect.Bottom(); y++ {
		if y < r.View.Top || y >= r.View.Top+r.View.Rows {
			continue
		}
		for x := rect.X; x < rect.Right(); x++ {
			dst.SetColored(x, y, glyph, c)
		}
	}
}
