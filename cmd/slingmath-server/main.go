// Package main runs the Player API server backed by the local player service.
//
// Usage:
//
//	go run ./cmd/slingmath-server [flags]
//
// Flags:
//
//	--addr <host:port>   Listen address (default 127.0.0.1:8001)
//	--app <name>         gdata storage name for player profiles
//	--memory             Keep profiles in memory only
//	--seed <n>           Question generator seed (0 = time based)
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/slingmath/pkg/api"
	"github.com/decker502/slingmath/pkg/player"
)

var (
	addrFlag   = flag.String("addr", "127.0.0.1:8001", "Listen address")
	appFlag    = flag.String("app", "slingmath_server", "gdata storage name for player profiles")
	memoryFlag = flag.Bool("memory", false, "Keep player profiles in memory only")
	seedFlag   = flag.Int64("seed", 0, "Question generator seed (0 = time based)")
)

func main() {
	flag.Parse()

	var manager *gdata.Manager
	if !*memoryFlag {
		m, err := gdata.Open(gdata.Config{AppName: *appFlag})
		if err != nil {
			log.Fatalf("[Server] Failed to open profile storage: %v", err)
		}
		manager = m
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	svc := player.NewLocalService(manager, rand.New(rand.NewSource(seed)))

	httpServer := &http.Server{
		Addr:         *addrFlag,
		Handler:      api.NewServer(svc).Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
	}

	go func() {
		log.Printf("[Server] Listening on %s", *addrFlag)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Server] %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
	log.Printf("[Server] Stopped")
}
