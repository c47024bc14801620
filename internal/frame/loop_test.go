package frame

import "testing"

func TestLoopRunsQueuedCallbacksOnce(t *testing.T) {
	l := NewLoop()
	calls := 0
	l.RequestFrame(func() { calls++ })

	l.Run()
	l.Run()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if l.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", l.Frames())
	}
}

func TestLoopDefersRequestsMadeDuringRun(t *testing.T) {
	l := NewLoop()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	for i := 0; i < 5; i++ {
		l.Run()
	}

	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
	if l.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", l.Pending())
	}
}

func TestLoopCancelFrame(t *testing.T) {
	tests := []struct {
		name string
		run  func(l *Loop, hit *bool)
	}{
		{"before run", func(l *Loop, hit *bool) {
			id := l.RequestFrame(func() { *hit = true })
			l.CancelFrame(id)
			l.Run()
		}},
		{"from earlier callback in same batch", func(l *Loop, hit *bool) {
			var second ID
			l.RequestFrame(func() { l.CancelFrame(second) })
			second = l.RequestFrame(func() { *hit = true })
			l.Run()
		}},
		{"zero id is ignored", func(l *Loop, hit *bool) {
			l.CancelFrame(0)
			l.Run()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoop()
			hit := false
			tt.run(l, &hit)
			if hit {
				t.Error("cancelled callback ran")
			}
			if l.Pending() != 0 {
				t.Errorf("Pending() = %d, want 0", l.Pending())
			}
		})
	}
}
