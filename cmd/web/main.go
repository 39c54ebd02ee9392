package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/moonshot/internal/config"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = "8080"
	shutdownTimeout = 5 * time.Second
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

// tier is one row of the difficulty table on the landing page.
type tier struct {
	Name    config.Difficulty
	Profile config.Profile
}

type page struct {
	SSHHost string
	SSHPort string
	Tiers   []tier
}

func main() {
	logger := config.NewLogger(os.Stderr, "moonshot-web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	profiles, err := config.LoadProfiles(config.GetEnv("PROFILES_FILE", ""))
	if err != nil {
		logger.Fatal("bad PROFILES_FILE", "err", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newHandler(logger, page{SSHHost: sshHost, SSHPort: sshPort, Tiers: tiers(profiles)}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func tiers(ps config.Profiles) []tier {
	out := make([]tier, 0, len(config.Difficulties))
	for _, d := range config.Difficulties {
		if p, err := ps.Get(d); err == nil {
			out = append(out, tier{Name: d, Profile: p})
		}
	}
	return out
}

func newHandler(logger *log.Logger, data page) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("render landing page", "err", err)
		}
	})
	return mux
}
