package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-oidc-portal/internal/config"
	"github.com/jrsteele09/go-oidc-portal/provider"
	"github.com/jrsteele09/go-oidc-portal/server"
	"github.com/jrsteele09/go-oidc-portal/server/authflowrepo"
	"github.com/jrsteele09/go-oidc-portal/sessions"
)

const sessionSweepInterval = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providerClient, err := provider.New(ctx, provider.FromConfig(c))
	if err != nil {
		return fmt.Errorf("provider.New: %w", err)
	}

	sessionRepo := sessions.NewInMemoryRepo()
	pendingRepo := authflowrepo.NewInMemoryRepo()
	go sweepExpired(ctx, sessionRepo, pendingRepo)

	srv, err := server.New(c, providerClient, sessionRepo, pendingRepo)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

// sweepExpired periodically removes expired sessions and abandoned login flows.
func sweepExpired(ctx context.Context, sessionRepo sessions.Repo, pendingRepo authflowrepo.Repo) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := sessionRepo.DeleteExpired(now); err != nil {
				log.Printf("Failed to sweep expired sessions: %v\n", err)
			}
			if err := pendingRepo.DeleteExpired(now); err != nil {
				log.Printf("Failed to sweep abandoned login flows: %v\n", err)
			}
		}
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
