package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"domainguard/src/core/ports"
)

type healthFunc func(context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func TestHealthServiceCheck(t *testing.T) {
	svc := NewHealthService(discardLogger(), map[string]ports.HealthChecker{
		"database": healthFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
		"catalog":  healthFunc(func(context.Context) error { return nil }),
		"ignored":  nil,
	})

	status := svc.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, ComponentHealth{Status: "unhealthy", Message: "dial tcp: refused"}, status.Components["database"])
	assert.Equal(t, ComponentHealth{Status: "healthy"}, status.Components["catalog"])
	assert.NotContains(t, status.Components, "ignored")
}

func TestHealthServiceNoComponents(t *testing.T) {
	status := NewHealthService(nil, nil).Check(context.Background())

	assert.Equal(t, "ok", status.Status)
	assert.Empty(t, status.Components)
}
