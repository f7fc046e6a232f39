package engine

import (
	"fmt"
	"time"

	"github.com/mj1618/replay-cli/internal/script"
)

// glide steps the pointer linearly toward the target, posting one absolute
// move per millisecond tick for the requested duration. The start position
// is sampled at spawn time; a failure to read it is fatal to this task only.
//
// Each tick is timed against the task's own start instant: the loop sleeps
// only the remaining delta when ahead of schedule and never sleeps when
// behind, so lag cannot accumulate across ticks.
func (s *Scheduler) glide(mv script.PointerMove) error {
	startX, startY, err := s.sink.CursorPosition()
	if err != nil {
		return fmt.Errorf("read pointer position: %w", err)
	}

	dx, dy := mv.X, mv.Y
	if mv.Mode == script.Absolute {
		dx -= startX
		dy -= startY
	}

	start := time.Now()
	for tick := 1; tick <= mv.Duration; tick++ {
		x := startX + dx*tick/mv.Duration
		y := startY + dy*tick/mv.Duration
		if err := s.sink.MoveMouse(x, y, false); err != nil {
			s.faultf("failed to move pointer to %d, %d: %v", x, y, err)
		}
		if d := time.Until(start.Add(time.Duration(tick) * time.Millisecond)); d > 0 {
			time.Sleep(d)
		}
	}
	return nil
}
