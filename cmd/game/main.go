package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "moonshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game, so logs only go to LOG_FILE.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "moonshot")

	name := config.GetEnv("DIFFICULTY", string(config.Medium))
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	difficulty, err := config.ParseDifficulty(name)
	if err != nil {
		return err
	}
	profiles, err := config.LoadProfiles(config.GetEnv("PROFILES_FILE", ""))
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Difficulty: difficulty,
		Profiles:   profiles,
		Logger:     logger,
		Lipgloss:   lipgloss.NewRenderer(os.Stdout),
	})
}
