package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameInterval is the scroll animation frame period.
const FrameInterval = time.Second / 60

// scrollFrameMsg advances the animation identified by id.
type scrollFrameMsg struct{ id int }

// scroll is an in-flight smooth scroll from one viewport offset to another
// over a fixed number of frames.
type scroll struct {
	id     int
	from   int
	to     int
	frame  int
	frames int
}

func newScroll(id, from, to int, d time.Duration) *scroll {
	frames := int(math.Round(float64(d) / float64(FrameInterval)))
	return &scroll{id: id, from: from, to: to, frames: max(frames, 1)}
}

// step advances one frame and returns the offset to show and whether the
// animation has finished. The last frame always lands on the target.
func (s *scroll) step() (int, bool) {
	s.frame++
	if s.frame >= s.frames {
		return s.to, true
	}
	p := easeInOut(float64(s.frame) / float64(s.frames))
	return s.from + int(math.Round(float64(s.to-s.from)*p)), false
}

func (s *scroll) tick() tea.Cmd {
	id := s.id
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg { return scrollFrameMsg{id: id} })
}

// easeInOut is the cubic ease-in-out curve on [0, 1].
func easeInOut(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	default:
		return 1 - math.Pow(-2*t+2, 3)/2
	}
}
