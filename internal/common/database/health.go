// internal/common/database/health.go
package database

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckAll pings each dependency and returns "ok" or the error text per name.
func CheckAll(ctx context.Context, timeout time.Duration, deps map[string]Pinger) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status := make(map[string]string, len(deps))
	healthy := true
	for name, p := range deps {
		if err := p.Ping(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	return status, healthy
}
