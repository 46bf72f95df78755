package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Http timeouts
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = time.Minute
	HandlerTimeout  = 45 * time.Second
	ShutdownTimeout = 30 * time.Second
)

// WaitForInterrupt blocks until SIGINT/SIGTERM is received or the context is canceled
func WaitForInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		return fmt.Errorf("received signal %s", sig)
	case <-ctx.Done():
		return errors.New("canceled")
	}
}
