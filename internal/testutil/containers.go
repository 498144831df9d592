// Package testutil starts throwaway service containers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Container describes a single-port service to start.
type Container struct {
	Image string
	Port  string // e.g. "6379/tcp"
	Env   map[string]string
	Cmd   []string
}

// Start runs c, waits until its port accepts connections and returns
// "host:port". The container is terminated when the test ends. Tests are
// skipped in -short mode.
func Start(ctx context.Context, t *testing.T, c Container) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping testcontainers test in short mode")
	}

	req := testcontainers.ContainerRequest{
		Image:        c.Image,
		ExposedPorts: []string{c.Port},
		Env:          c.Env,
		Cmd:          c.Cmd,
		WaitingFor:   wait.ForListeningPort(c.Port).WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, c.Port)
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, port.Port())
}
