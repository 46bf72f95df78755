package health

import (
	"context"
	"sync"
	"time"

	"github.com/DMarby/visit-badge/internal/logger"
)

const checkInterval = 10 * time.Second
const checkTimeout = 8 * time.Second

// Pinger checks whether an upstream service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker is a periodic health checker
type Checker struct {
	Ctx     context.Context
	Counter Pinger
	Badges  Pinger
	status  Status
	mutex   sync.RWMutex
	Log     *logger.Logger
}

// Status contains the healtcheck status
type Status struct {
	Healthy bool   `json:"healthy"`
	Counter string `json:"counter,omitempty"`
	Badges  string `json:"badges,omitempty"`
}

// Run runs a check, and then keeps checking periodically until the context is canceled
func (c *Checker) Run() {
	ticker := time.NewTicker(checkInterval)
	go func() {
		for {
			select {
			case <-ticker.C:
				c.runCheck()
			case <-c.Ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()

	c.runCheck()
}

// Status returns the status of the health checks
func (c *Checker) Status() Status {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.status
}

func (c *Checker) runCheck() {
	ctx, cancel := context.WithTimeout(c.Ctx, checkTimeout)
	defer cancel()

	channel := make(chan Status, 1)
	go func() {
		c.check(ctx, channel)
	}()

	select {
	case <-ctx.Done():
		c.setUnknown()
		c.Log.Errorw("healthcheck timed out")
	case status, ok := <-channel:
		// The check was aborted
		if !ok {
			c.setUnknown()
			return
		}

		c.mutex.Lock()
		c.status = status
		c.mutex.Unlock()

		if !status.Healthy {
			c.Log.Errorw("healthcheck error",
				"status", status,
			)
		}
	}
}

func (c *Checker) setUnknown() {
	c.mutex.Lock()
	c.status = c.unknownStatus()
	c.mutex.Unlock()
}

func (c *Checker) unknownStatus() Status {
	status := Status{
		Healthy: false,
	}
	if c.Counter != nil {
		status.Counter = "unknown"
	}
	if c.Badges != nil {
		status.Badges = "unknown"
	}

	return status
}

func (c *Checker) check(ctx context.Context, channel chan Status) {
	defer close(channel)

	status := c.unknownStatus()
	status.Healthy = true

	if c.Counter != nil {
		if err := c.Counter.Ping(ctx); err != nil {
			status.Healthy = false
			status.Counter = "unhealthy"
		} else {
			status.Counter = "healthy"
		}
	}

	if ctx.Err() != nil {
		return
	}

	if c.Badges != nil {
		if err := c.Badges.Ping(ctx); err != nil {
			status.Healthy = false
			status.Badges = "unhealthy"
		} else {
			status.Badges = "healthy"
		}
	}

	if ctx.Err() != nil {
		return
	}

	channel <- status
}
