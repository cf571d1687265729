// Command tpa-bridge serves the bridge over HTTP for framework runtimes that
// run out of process. Calls are forwarded to a logging SDK.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	tpa "github.com/theperfectapp/tpa-bridge-go"
	"github.com/theperfectapp/tpa-bridge-go/transport"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

func main() {
	configPath := flag.String("config", "", "host config file (.yaml, .yml or .toml)")
	listen := flag.String("listen", "", "listen address, overrides the config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *configPath); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *Config, configPath string) error {
	bridge, err := newBridge(cfg)
	if err != nil {
		return err
	}

	if configPath != "" {
		err = watchConfig(ctx, configPath, func(reloaded *Config) {
			bridge.SetHostDebug(reloaded.Debug)
			util.Infof("Reloaded %s, debug=%t", configPath, reloaded.Debug)
		})
		if err != nil {
			util.Warnf("Config changes will not be picked up: %v", err)
		}
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           transport.NewHandler(tpa.NewDispatcher(bridge)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		util.Infof("TPA bridge %s listening on %s", tpa.VERSION, cfg.Listen)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	util.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newBridge(cfg *Config) (*tpa.Bridge, error) {
	bridge, err := tpa.NewBridge(&tpa.ConsoleSDK{}, &tpa.Options{Debug: cfg.Debug})
	if err != nil {
		return nil, err
	}
	if startup := cfg.Initialize; startup != nil {
		var blob *structpb.Struct
		if startup.Configuration != nil {
			blob = tpa.NewStruct(startup.Configuration)
		}
		if err := bridge.Initialize(startup.URL, startup.ProjectUUID, blob); err != nil {
			return nil, err
		}
	}
	return bridge, nil
}
