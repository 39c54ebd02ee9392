package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func feed(s *Stream, keys string) {
	for i := range len(keys) {
		s.ch <- keys[i]
	}
}

func TestDirections(t *testing.T) {
	tests := []struct {
		keys string
		want Input
	}{
		{"\x1b[A", Input{Up: true}},
		{"\x1b[B", Input{Down: true}},
		{"\x1b[C", Input{Right: true}},
		{"\x1b[D", Input{Left: true}},
		{"w", Input{Up: true}},
		{"S", Input{Down: true}},
		{"a", Input{Left: true}},
		{"l", Input{Right: true}},
		{"ij", Input{Up: true, Left: true}},
		{"\x1b[A\x1b[C", Input{Up: true, Right: true}},
	}
	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.keys, "\x1b", "ESC"), func(t *testing.T) {
			s := newStream(make(chan byte, 16))
			feed(s, tt.keys)
			got := s.read(time.Now())
			if got.Up != tt.want.Up || got.Down != tt.want.Down || got.Left != tt.want.Left || got.Right != tt.want.Right {
				t.Errorf("read(%q) = %+v, want %+v", tt.keys, got, tt.want)
			}
			if string(got.Pressed) != tt.keys {
				t.Errorf("Pressed = %q, want %q", got.Pressed, tt.keys)
			}
		})
	}
}

func TestDirectionHeldBriefly(t *testing.T) {
	s := newStream(make(chan byte, 16))
	now := time.Now()
	feed(s, "a")
	if !s.read(now).Left {
		t.Fatal("left not pressed")
	}
	if !s.read(now.Add(20 * time.Millisecond)).Left {
		t.Error("left released within the hold window")
	}
	if s.read(now.Add(keyHoldDuration)).Left {
		t.Error("left still held after the hold window")
	}
}

func TestFireIsEdgeTriggered(t *testing.T) {
	s := newStream(make(chan byte, 16))
	now := time.Now()

	feed(s, " ")
	if !s.read(now).Fire {
		t.Fatal("first space did not fire")
	}
	if s.read(now.Add(5 * time.Millisecond)).Fire {
		t.Error("fire reported again without a new press")
	}

	// Holding space: the first autorepeat arrives after the terminal's
	// initial delay, then repeats follow quickly.
	for _, at := range []time.Duration{660, 693, 726, 759, 1200, 1850} {
		feed(s, " ")
		if s.read(now.Add(at * time.Millisecond)).Fire {
			t.Errorf("autorepeat at %dms fired", at)
		}
	}

	feed(s, " ")
	if !s.read(now.Add(2600 * time.Millisecond)).Fire {
		t.Error("new press after release did not fire")
	}
}

func TestRestartAndQuit(t *testing.T) {
	tests := []struct {
		keys        string
		restart     bool
		quit        bool
		description string
	}{
		{"r", true, false, "r"},
		{"\r", true, false, "enter"},
		{"q", false, true, "q"},
		{"\x03", false, true, "ctrl-c"},
		{"x", false, false, "unmapped"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			s := newStream(make(chan byte, 16))
			feed(s, tt.keys)
			got := s.read(time.Now())
			if got.Restart != tt.restart || got.Quit != tt.quit {
				t.Errorf("Restart, Quit = %v, %v, want %v, %v", got.Restart, got.Quit, tt.restart, tt.quit)
			}
			if s.read(time.Now()).Restart {
				t.Error("restart repeated on the next frame")
			}
		})
	}
}

func TestResetClearsHeldKeys(t *testing.T) {
	s := newStream(make(chan byte, 16))
	now := time.Now()
	feed(s, "w ")
	s.read(now)

	s.Reset()
	got := s.read(now.Add(time.Millisecond))
	if got.Up {
		t.Error("up still held after Reset")
	}

	feed(s, " ")
	if !s.read(now.Add(2 * time.Millisecond)).Fire {
		t.Error("fire suppressed after Reset")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in := ReadInput(s)
		if in.Quit {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("closed stream never reported Quit")
}
