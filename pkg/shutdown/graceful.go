// Package shutdown ожидает сигнал завершения и выполняет хуки остановки.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"albuhara/pkg/logger"
)

const (
	logShutdownStarted = "shutdown started"
	logHookFailed      = "shutdown hook failed"
	logShutdownTimeout = "shutdown timed out"
)

// Hook - функция остановки одного компонента.
type Hook func(context.Context) error

// Wait блокируется до SIGINT/SIGTERM или отмены ctx, затем параллельно
// выполняет хуки, ограничивая их общее время значением timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	log := logger.Log(ctx)
	log.Info(ctx, logShutdownStarted, zap.Int("hooks", len(hooks)))

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logShutdownTimeout, zap.Duration("timeout", timeout))
	}
}
