package engine

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mj1618/replay-cli/internal/platform"
	"github.com/mj1618/replay-cli/internal/script"
)

// minGlideDuration is the smallest mousemove duration (in ms) executed as a
// concurrent glide task; shorter moves dispatch synchronously.
const minGlideDuration = 2

// Options controls how dispatched actions are routed. Execute drives the
// injection sink; Log writes a human-readable line per action. Routing is
// evaluated per action, so mixed configurations stay consistent: a dry run
// sets Log only, verbose sets both.
type Options struct {
	Execute bool
	Log     bool
}

// Result summarizes a completed run. Faults are the non-fatal dispatch and
// task failures collected along the way; they never abort a run.
type Result struct {
	Groups  int
	Actions int
	Glides  int
	Faults  []string
	Elapsed time.Duration
}

// Scheduler walks an instruction queue against wall-clock time. Each group
// waits until its resolved timestamp has elapsed since a single run-start
// instant, then dispatches its actions: instantaneous ones synchronously and
// in script order, continuous pointer moves as independently timed glide
// tasks. The scheduler owns every spawned task and joins them all before
// Run returns.
type Scheduler struct {
	sink platform.Sink
	opts Options
	out  io.Writer

	wg sync.WaitGroup

	mu     sync.Mutex
	faults []string
}

// New creates a Scheduler driving the given sink.
func New(sink platform.Sink, opts Options) *Scheduler {
	return &Scheduler{sink: sink, opts: opts, out: os.Stdout}
}

// SetOutput redirects log lines and fault reports (default os.Stdout).
func (s *Scheduler) SetOutput(w io.Writer) { s.out = w }

// Run consumes the queue in order and blocks until every action, including
// every outstanding glide task, has completed. There is no cancellation:
// once a run begins it plays to the end.
func (s *Scheduler) Run(queue []script.InstructionGroup) Result {
	start := time.Now()
	actions := 0
	glides := 0

	for _, group := range queue {
		// Waits are computed from the fixed start instant, not per-step
		// deltas, so short intervals cannot accumulate drift. A late wakeup
		// just makes the next wait shorter (or zero).
		if d := time.Until(start.Add(time.Duration(group.Time) * time.Millisecond)); d > 0 {
			time.Sleep(d)
		}
		for _, action := range group.Actions {
			actions++
			if s.dispatch(group.Time, action) {
				glides++
			}
		}
	}

	s.wg.Wait()

	s.mu.Lock()
	faults := append([]string(nil), s.faults...)
	s.mu.Unlock()

	return Result{
		Groups:  len(queue),
		Actions: actions,
		Glides:  glides,
		Faults:  faults,
		Elapsed: time.Since(start),
	}
}

// dispatch routes one action and reports whether it spawned a glide task.
func (s *Scheduler) dispatch(at int64, action script.Action) bool {
	if mv, ok := action.(script.PointerMove); ok && mv.Duration >= minGlideDuration {
		if s.opts.Log {
			s.logf(at, "glide pointer %s over %dms", describeTarget(mv), mv.Duration)
		}
		if !s.opts.Execute {
			return false
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.glide(mv); err != nil {
				s.faultf("failed to glide pointer %s: %v", describeTarget(mv), err)
			}
		}()
		return true
	}

	switch a := action.(type) {
	case script.PointerMove:
		if s.opts.Execute {
			if err := s.sink.MoveMouse(a.X, a.Y, a.Mode == script.Relative); err != nil {
				s.faultf("failed to move pointer %s: %v", describeTarget(a), err)
			}
		}
		if s.opts.Log {
			s.logf(at, "move pointer %s", describeTarget(a))
		}
	case script.ButtonDown:
		if s.opts.Execute {
			if err := s.sink.Button(a.Button, true); err != nil {
				s.faultf("failed to press mouse %s: %v", a.Button, err)
			}
		}
		if s.opts.Log {
			s.logf(at, "press mouse %s", a.Button)
		}
	case script.ButtonUp:
		if s.opts.Execute {
			if err := s.sink.Button(a.Button, false); err != nil {
				s.faultf("failed to release mouse %s: %v", a.Button, err)
			}
		}
		if s.opts.Log {
			s.logf(at, "release mouse %s", a.Button)
		}
	case script.KeyDown:
		if s.opts.Execute {
			if err := s.sink.Key(a.Key, true); err != nil {
				s.faultf("failed to press key %q: %v", string(a.Key), err)
			}
		}
		if s.opts.Log {
			s.logf(at, "press key %q", string(a.Key))
		}
	case script.KeyUp:
		if s.opts.Execute {
			if err := s.sink.Key(a.Key, false); err != nil {
				s.faultf("failed to release key %q: %v", string(a.Key), err)
			}
		}
		if s.opts.Log {
			s.logf(at, "release key %q", string(a.Key))
		}
	case script.TypeText:
		if s.opts.Execute {
			if err := s.sink.TypeText(a.Text); err != nil {
				s.faultf("failed to type %q: %v", a.Text, err)
			}
		}
		if s.opts.Log {
			s.logf(at, "type %q", a.Text)
		}
	}
	return false
}

func describeTarget(mv script.PointerMove) string {
	if mv.Mode == script.Relative {
		return fmt.Sprintf("by %d, %d", mv.X, mv.Y)
	}
	return fmt.Sprintf("to %d, %d", mv.X, mv.Y)
}

func (s *Scheduler) logf(at int64, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "At %dms: %s\n", at, fmt.Sprintf(format, args...))
}

// faultf records a non-fatal failure and reports it immediately.
func (s *Scheduler) faultf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, msg)
	fmt.Fprintln(s.out, msg)
}
