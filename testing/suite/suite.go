package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120
	setupTimeout = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite carries a flushed Redis connection for repository-backed tests.
type Suite struct {
	*testing.T

	Storage *redis.Client

	// Server is set only for in-memory suites; it controls the fake clock.
	Server *miniredis.Miniredis
}

// NewLogger is the logger handed to code under test.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// NewInMemory starts an embedded Redis server. It speaks the real protocol,
// WATCH and MULTI included, so no Docker daemon is needed.
func NewInMemory(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx := setupContext(t)

	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("could not reach embedded redis: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Storage: client,
		Server:  server,
	}
}

// New runs a disposable redis:alpine container and connects to it.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx := setupContext(t)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	// hard kill even if cleanup never runs
	_ = resource.Expire(containerTTL)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	pool.MaxWait = setupTimeout

	var client *redis.Client
	err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})

		return client.Ping(ctx).Err()
	})
	if err != nil {
		t.Fatalf("redis container never became ready: %v", err)
	}

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

func setupContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	t.Cleanup(cancel)

	return ctx
}
