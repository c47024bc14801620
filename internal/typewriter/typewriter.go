// Package typewriter cycles a headline through phrases, typing and deleting
// one character at a time.
package typewriter

import "time"

// Timing controls the typing rhythm.
type Timing struct {
	Type        time.Duration `yaml:"type"`
	Delete      time.Duration `yaml:"delete"`
	Hold        time.Duration `yaml:"hold"`
	NextPhrase  time.Duration `yaml:"next_phrase"`
	StartupWait time.Duration `yaml:"startup_wait"`
}

func DefaultTiming() Timing {
	return Timing{
		Type:        100 * time.Millisecond,
		Delete:      50 * time.Millisecond,
		Hold:        2000 * time.Millisecond,
		NextPhrase:  500 * time.Millisecond,
		StartupWait: 1500 * time.Millisecond,
	}
}

// Typewriter is driven by frame time through Advance.
type Typewriter struct {
	phrases [][]rune
	timing  Timing

	phrase   int
	chars    int
	deleting bool
	wait     time.Duration
	next     time.Duration
}

func New(phrases []string, timing Timing) *Typewriter {
	tw := &Typewriter{timing: timing, wait: timing.StartupWait}
	for _, p := range phrases {
		tw.phrases = append(tw.phrases, []rune(p))
	}
	return tw
}

// Text is the visible part of the current phrase.
func (tw *Typewriter) Text() string {
	if len(tw.phrases) == 0 {
		return ""
	}
	return string(tw.phrases[tw.phrase][:tw.chars])
}

// Phrase returns the index of the phrase being typed.
func (tw *Typewriter) Phrase() int { return tw.phrase }

// Advance moves the clock by dt and returns how many keystrokes happened.
func (tw *Typewriter) Advance(dt time.Duration) (keystrokes int) {
	if len(tw.phrases) == 0 {
		return 0
	}
	tw.wait -= dt
	for tw.wait <= 0 {
		tw.step()
		keystrokes++
		if tw.next <= 0 {
			// a zero delay would spin forever
			tw.wait = time.Millisecond
			break
		}
		tw.wait += tw.next
	}
	return keystrokes
}

// step performs one keystroke and decides the delay before the next.
func (tw *Typewriter) step() {
	current := tw.phrases[tw.phrase]
	if tw.deleting {
		if tw.chars > 0 {
			tw.chars--
		}
	} else if tw.chars < len(current) {
		tw.chars++
	}

	switch {
	case !tw.deleting && tw.chars == len(current):
		tw.deleting = true
		tw.next = tw.timing.Hold
	case tw.deleting && tw.chars == 0:
		tw.deleting = false
		tw.phrase = (tw.phrase + 1) % len(tw.phrases)
		tw.next = tw.timing.NextPhrase
	case tw.deleting:
		tw.next = tw.timing.Delete
	default:
		tw.next = tw.timing.Type
	}
}
