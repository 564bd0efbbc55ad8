package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Brownie44l1/webroot/internal/server"
)

func main() {
	config, defaultErr := server.DefaultConfig()

	flag.StringVar(&config.Addr, "addr", config.Addr, "address to listen on")
	flag.StringVar(&config.Root, "root", config.Root, "document root")
	flag.DurationVar(&config.ReadTimeout, "read-timeout", config.ReadTimeout, "deadline for reading a request head, 0 for none")
	flag.IntVar(&config.MaxHeaderBytes, "max-header-bytes", config.MaxHeaderBytes, "request head size limit, 0 for none")
	flag.BoolVar(&config.Concurrent, "concurrent", config.Concurrent, "serve each connection on its own goroutine")
	flag.BoolVar(&config.ConfineToRoot, "confine", config.ConfineToRoot, "reject paths that resolve outside the document root")
	logFormat := flag.String("log-format", server.LogFormatConsole, "log format: console or json")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger, err := server.NewLogger(os.Stderr, *logFormat, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if config.Root == "" && defaultErr != nil {
		logger.Fatal().Err(defaultErr).Msg("no default document root, pass -root")
	}

	srv, err := server.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		stop()
		logger.Fatal().Err(err).Msg("server error")
	}
}
