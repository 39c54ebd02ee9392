package loop_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/loop"
	"github.com/tomz197/moonshot/internal/object"
)

// recorder is a Renderer that remembers every HUD it was given and
// signals the first loss and the first running frame after it.
type recorder struct {
	huds      []loop.HUD
	shapes    int
	lost      chan struct{}
	restarted chan struct{}
	sawLoss   bool
	sawAgain  bool
}

func newRecorder() *recorder {
	return &recorder{lost: make(chan struct{}), restarted: make(chan struct{})}
}

func (r *recorder) Begin()             {}
func (r *recorder) Shape(object.Shape) { r.shapes++ }
func (r *recorder) Flush() error       { return nil }

func (r *recorder) HUD(h loop.HUD) {
	r.huds = append(r.huds, h)
	switch {
	case h.Outcome == object.Lost && !r.sawLoss:
		r.sawLoss = true
		close(r.lost)
	case h.Outcome == object.Running && r.sawLoss && !r.sawAgain:
		r.sawAgain = true
		close(r.restarted)
	}
}

func quickProfiles() config.Profiles {
	ps := config.DefaultProfiles()
	p := ps[config.Easy]
	p.TimerSeconds = 1
	p.ParticleCount = 20
	ps[config.Easy] = p
	return ps
}

func TestRunQuits(t *testing.T) {
	rec := newRecorder()
	err := loop.Run(context.Background(), strings.NewReader("q"), io.Discard, loop.Options{
		Renderer: rec,
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	rec := newRecorder()
	var out bytes.Buffer
	if err := loop.Run(ctx, pr, &out, loop.Options{Renderer: rec}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.huds) == 0 {
		t.Fatal("no frame rendered")
	}
	if h := rec.huds[0]; h.Total != 500 || h.Timer != 60 {
		t.Errorf("first HUD = %+v, want the medium profile", h)
	}
	for _, want := range []string{"\033[?1049h", "\033[?25h", "\033[?1049l"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.LastIndex(out.String(), "\033[?1049l") < strings.LastIndex(out.String(), "\033[?25h") {
		t.Error("left the alternate screen before restoring the cursor")
	}
}

func TestRunRejectsBadConfiguration(t *testing.T) {
	broken := config.DefaultProfiles()
	p := broken[config.Hard]
	p.BulletRadius = 0
	broken[config.Hard] = p

	tests := []struct {
		name string
		opts loop.Options
		want error
	}{
		{"unknown difficulty", loop.Options{Difficulty: "nightmare"}, config.ErrUnknownDifficulty},
		{"invalid profile", loop.Options{Difficulty: config.Hard, Profiles: broken}, config.ErrInvalidProfile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Renderer = newRecorder()
			err := loop.Run(context.Background(), strings.NewReader(""), io.Discard, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Run = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunRestartsAfterLoss(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a countdown")
	}

	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rec := newRecorder()
	go func() {
		select {
		case <-rec.lost:
		case <-ctx.Done():
			return
		}
		_, _ = pw.Write([]byte("r"))
		select {
		case <-rec.restarted:
		case <-ctx.Done():
			return
		}
		_, _ = pw.Write([]byte("q"))
	}()

	var logs bytes.Buffer
	err := loop.Run(ctx, pr, io.Discard, loop.Options{
		Difficulty: config.Easy,
		Profiles:   quickProfiles(),
		Renderer:   rec,
		Logger:     log.New(&logs),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run only stopped on timeout")
	}
	if !rec.sawAgain {
		t.Fatal("no running frame after the loss")
	}

	last := rec.huds[len(rec.huds)-1]
	if last.Timer != 1 || last.Remaining != 20 {
		t.Errorf("HUD after restart = %+v, want a fresh round", last)
	}
	for _, want := range []string{"round started", "round concluded", "round restarted", "player quit"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q", want)
		}
	}
}
