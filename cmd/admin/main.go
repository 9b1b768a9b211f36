package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"albuhara/internal/admin/cli"
	"albuhara/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "ADMIN_LOGGER_MODE"
	EnvLoggerLevel = "ADMIN_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger = "failed to initialize logger"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	level := os.Getenv(EnvLoggerLevel)
	if level == "" {
		level = "warn"
	}
	log, err := logger.NewLogger(env, level)
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logger.NewRequestIDContext(ctx, "")

	runner := &cli.Runner{Out: os.Stdout, Err: os.Stderr}
	err = runner.Run(ctx, os.Args[1:])
	stop()

	switch {
	case err == nil:
	case cli.IsHelp(err):
		_, _ = fmt.Fprintln(os.Stdout, err)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		os.Exit(1)
	}
}
