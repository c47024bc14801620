// Package scramble animates a text change by cycling random glyphs through
// each position before it settles on the new character.
package scramble

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/iburimskiy/quantum-backdrop/internal/frame"
)

const (
	// Glyphs are drawn from this set while a position is scrambling.
	Glyphs = `!<>-_\/[]{}—=+*^?#________`

	// window is the frame range for both start and settle offsets.
	window = 40
	// rerollChance is the per-frame chance a scrambling glyph changes.
	rerollChance = 0.28
)

var (
	ErrMissingElement   = errors.New("scramble: missing target element")
	ErrMissingScheduler = errors.New("scramble: missing frame scheduler")
	// ErrSuperseded is delivered to a transition replaced by a newer SetText.
	ErrSuperseded = errors.New("scramble: superseded by a newer transition")
)

// Glyph is one displayed character. Scrambled marks a placeholder glyph.
type Glyph struct {
	Char      string
	Scrambled bool
}

// Element is the text target of a scramble.
type Element interface {
	// Text returns the currently displayed text.
	Text() string
	SetGlyphs(glyphs []Glyph)
}

type slot struct {
	from, to   string
	start, end int
	char       string
}

// Scrambler runs at most one transition at a time on its element.
type Scrambler struct {
	el    Element
	sched frame.Scheduler
	rng   *rand.Rand
	glyph []rune

	queue   []slot
	frame   int
	request frame.ID
	done    chan error
	buf     []Glyph
}

// New returns a scrambler for el. A nil rng is seeded from the clock.
func New(el Element, sched frame.Scheduler, rng *rand.Rand) (*Scrambler, error) {
	if el == nil {
		return nil, ErrMissingElement
	}
	if sched == nil {
		return nil, ErrMissingScheduler
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scrambler{el: el, sched: sched, rng: rng, glyph: []rune(Glyphs)}, nil
}

// SetText starts a transition to newText and returns a channel that
// receives nil once every position has settled, or ErrSuperseded if another
// SetText call replaces it first. The first frame is applied before return.
func (s *Scrambler) SetText(newText string) <-chan error {
	s.cancel()

	oldRunes := []rune(s.el.Text())
	newRunes := []rune(newText)
	n := max(len(oldRunes), len(newRunes))
	s.queue = s.queue[:0]
	for i := 0; i < n; i++ {
		start := s.rng.Intn(window)
		s.queue = append(s.queue, slot{
			from:  runeAt(oldRunes, i),
			to:    runeAt(newRunes, i),
			start: start,
			end:   start + 1 + s.rng.Intn(window),
		})
	}

	done := make(chan error, 1)
	s.done = done
	s.frame = 0
	s.update()
	return done
}

// Busy reports whether a transition is in flight.
func (s *Scrambler) Busy() bool { return s.done != nil }

func (s *Scrambler) cancel() {
	if s.done == nil {
		return
	}
	s.sched.CancelFrame(s.request)
	s.request = 0
	s.done <- ErrSuperseded
	s.done = nil
}

func (s *Scrambler) update() {
	s.buf = s.buf[:0]
	complete := 0
	for i := range s.queue {
		q := &s.queue[i]
		switch {
		case s.frame >= q.end:
			complete++
			s.buf = appendText(s.buf, q.to)
		case s.frame >= q.start:
			if q.char == "" || s.rng.Float64() < rerollChance {
				q.char = string(s.glyph[s.rng.Intn(len(s.glyph))])
			}
			s.buf = append(s.buf, Glyph{Char: q.char, Scrambled: true})
		default:
			s.buf = appendText(s.buf, q.from)
		}
	}
	s.el.SetGlyphs(s.buf)

	if complete == len(s.queue) {
		s.request = 0
		s.done <- nil
		s.done = nil
		return
	}
	s.request = s.sched.RequestFrame(s.update)
	s.frame++
}

func appendText(buf []Glyph, ch string) []Glyph {
	if ch == "" {
		return buf
	}
	return append(buf, Glyph{Char: ch})
}

func runeAt(rs []rune, i int) string {
	if i < len(rs) {
		return string(rs[i])
	}
	return ""
}

// Label is an in-memory Element.
type Label struct {
	glyphs []Glyph
}

func NewLabel(text string) *Label {
	l := &Label{}
	for _, r := range text {
		l.glyphs = append(l.glyphs, Glyph{Char: string(r)})
	}
	return l
}

// Text joins the displayed glyphs, placeholders included.
func (l *Label) Text() string {
	var b strings.Builder
	for _, g := range l.glyphs {
		b.WriteString(g.Char)
	}
	return b.String()
}

// SetGlyphs copies glyphs, so the caller may reuse its slice.
func (l *Label) SetGlyphs(glyphs []Glyph) {
	l.glyphs = append(l.glyphs[:0], glyphs...)
}

func (l *Label) Glyphs() []Glyph { return l.glyphs }

// Scrambling reports whether any placeholder glyph is showing.
func (l *Label) Scrambling() bool {
	for _, g := range l.glyphs {
		if g.Scrambled {
			return true
		}
	}
	return false
}
