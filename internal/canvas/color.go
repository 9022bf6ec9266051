package canvas

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// RGB builds an opaque color from 8-bit channels.
func RGB(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Over composites c at the given opacity over a background.
func Over(c, bg colorful.Color, alpha float64) colorful.Color {
	return bg.BlendRgb(c, clamp01(alpha)).Clamped()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ansiState tracks the active foreground so a row only emits a sequence
// when the color actually changes.
type ansiState struct {
	profile termenv.Profile
	cache   map[string]string
	current string
}

func newANSIState(p termenv.Profile, cache map[string]string) ansiState {
	return ansiState{profile: p, cache: cache}
}

func (s *ansiState) set(sb *strings.Builder, c colorful.Color) {
	if s.profile == termenv.Ascii {
		return
	}
	hex := c.Clamped().Hex()
	if hex == s.current {
		return
	}
	seq, ok := s.cache[hex]
	if !ok {
		if col := s.profile.Color(hex); col != nil {
			if fg := col.Sequence(false); fg != "" {
				seq = termenv.CSI + fg + "m"
			}
		}
		s.cache[hex] = seq
	}
	sb.WriteString(seq)
	s.current = hex
}

func (s *ansiState) reset(sb *strings.Builder) {
	if s.profile == termenv.Ascii || s.current == "" {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	s.current = ""
}
