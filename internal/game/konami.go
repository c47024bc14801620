package game

import "github.com/hajimehoshi/ebiten/v2"

var konamiCode = []ebiten.Key{
	ebiten.KeyArrowUp, ebiten.KeyArrowUp,
	ebiten.KeyArrowDown, ebiten.KeyArrowDown,
	ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyB, ebiten.KeyA,
}

// sequence matches a fixed key sequence. Any wrong key starts over from the
// beginning, including a wrong key that would itself open the sequence.
type sequence struct {
	keys []ebiten.Key
	pos  int
}

func newKonami() *sequence { return &sequence{keys: konamiCode} }

// Press feeds one key and reports whether it completed the sequence.
func (s *sequence) Press(k ebiten.Key) bool {
	if k != s.keys[s.pos] {
		s.pos = 0
		return false
	}
	s.pos++
	if s.pos == len(s.keys) {
		s.pos = 0
		return true
	}
	return false
}
