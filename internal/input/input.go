// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// fireRepeatWindow suppresses terminal autorepeat: a space that arrives
// within this window of the previous one belongs to the same press. It
// must outlast the initial autorepeat delay (500-660ms on common
// terminals), since a terminal never reports the key release.
const fireRepeatWindow = 700 * time.Millisecond

// Input represents the current frame's input state. Directions are
// level-triggered; Fire, Restart and Quit are events seen this frame.
type Input struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Fire    bool
	Restart bool
	Quit    bool
	Pressed []byte
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	space time.Time
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream(make(chan byte, 128))
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(ch chan byte) *Stream {
	return &Stream{ch: ch}
}

// Reset forgets every held key, so nothing carries over into a new round.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	buf := s.drain()

	var input Input
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		switch b {
		case 'a', 'A', 'j', 'J':
			s.state.left = now
		case 'd', 'D', 'l', 'L':
			s.state.right = now
		case 'w', 'W', 'i', 'I':
			s.state.up = now
		case 's', 'S', 'k', 'K':
			s.state.down = now
		case ' ':
			if now.Sub(s.state.space) > fireRepeatWindow {
				input.Fire = true
			}
			s.state.space = now
		case 'r', 'R', '\n', '\r':
			input.Restart = true
		case 'q', 'Q', '\x03':
			input.Quit = true
		}
	}

	input.Left = now.Sub(s.state.left) < keyHoldDuration
	input.Right = now.Sub(s.state.right) < keyHoldDuration
	input.Up = now.Sub(s.state.up) < keyHoldDuration
	input.Down = now.Sub(s.state.down) < keyHoldDuration
	input.Quit = input.Quit || s.closed
	input.Pressed = buf
	return input
}

// drain collects every byte currently buffered in the channel.
func (s *Stream) drain() []byte {
	var buf []byte
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
	return buf
}
