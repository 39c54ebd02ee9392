package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/draw"
	"github.com/tomz197/moonshot/internal/input"
	"github.com/tomz197/moonshot/internal/object"
)

// Options configures Run.
type Options struct {
	Difficulty   config.Difficulty
	Profiles     config.Profiles    // Defaults to config.DefaultProfiles()
	TermSizeFunc draw.TermSizeFunc  // Defaults to the size of os.Stdout
	Logger       *log.Logger        // Defaults to discarding
	Rand         *rand.Rand         // Defaults to a time-seeded source
	Lipgloss     *lipgloss.Renderer // Defaults to a renderer detected from w
	Renderer     Renderer           // Defaults to a TerminalRenderer on w
}

// Run plays rounds on the terminal behind r and w until the player quits,
// the input stream ends or ctx is cancelled.
//
// A single goroutine owns the game and selects over the frame ticker, the
// countdown ticker and ctx, so a frame and a countdown step never overlap.
// Input bytes are pumped by a detached goroutine that only touches the
// stream's channel.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	if opts.Difficulty == "" {
		opts.Difficulty = config.Medium
	}
	if opts.Profiles == nil {
		opts.Profiles = config.DefaultProfiles()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	profile, err := opts.Profiles.Get(opts.Difficulty)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	game := NewGame(opts.Rand)
	if err := game.StartRound(profile); err != nil {
		return err
	}
	logger = logger.With("difficulty", opts.Difficulty)
	logRoundStart(logger, game)

	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewTerminalRenderer(w, opts.TermSizeFunc, opts.Lipgloss, string(opts.Difficulty))
	}

	stream := input.StartStream(bufio.NewReader(r))

	draw.EnterAltScreen(w)
	defer draw.ExitAltScreen(w)
	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)
	defer draw.ClearScreen(w)

	frames := time.NewTicker(config.TargetFrameTime)
	defer frames.Stop()
	countdown := time.NewTicker(config.CountdownPeriod)
	defer countdown.Stop()

	start := time.Now()
	reported := object.Running

	for {
		select {
		case <-ctx.Done():
			logger.Debug("context done", "round", game.RoundID(), "err", ctx.Err())
			return nil

		case <-countdown.C:
			game.OnTick1Hz()

		case now := <-frames.C:
			in := input.ReadInput(stream)
			if in.Quit {
				logger.Info("player quit", "round", game.RoundID(), "outcome", game.Outcome())
				return nil
			}

			if in.Restart && game.Outcome().Terminal() {
				stream.Reset()
				game.Restart()
				countdown.Reset(config.CountdownPeriod)
				reported = object.Running
				logger.Info("round restarted")
				logRoundStart(logger, game)
				in = object.Input{}
			}

			game.SetInput(in)
			if in.Fire {
				game.Fire()
			}
			game.OnFrame(now.Sub(start))

			if o := game.Outcome(); o != reported {
				reported = o
				logger.Info("round concluded",
					"round", game.RoundID(),
					"outcome", o,
					"timer", game.Timer(),
					"destroyed", game.Profile().ParticleCount-game.Remaining(),
				)
			}

			if err := Render(renderer, game); err != nil {
				return fmt.Errorf("render frame: %w", err)
			}
		}
	}
}

func logRoundStart(logger *log.Logger, g *Game) {
	p := g.Profile()
	logger.Info("round started",
		"round", g.RoundID(),
		"particles", p.ParticleCount,
		"timer", p.TimerSeconds,
		"cooldown", p.FireCooldown(),
		"bullet", p.BulletRadius,
	)
}
