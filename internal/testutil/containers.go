// Package testutil 为集成测试启动一次性的 Postgres 和 Redis 容器。
//
// 只有在设置了 DOCKER_AVAILABLE=true（或 1）时才会真正启动容器，否则调用方的测试会被跳过。
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	startupTimeout = 60 * time.Second
	pollInterval   = 200 * time.Millisecond

	redisPassword = "roster"
)

// RequireDocker 在没有 docker 的环境中跳过测试
func RequireDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("short mode")
	}
	if v := os.Getenv("DOCKER_AVAILABLE"); v != "true" && v != "1" {
		t.Skip("docker not available")
	}
}

// StartPostgres 启动 Postgres 容器并执行 migrationsDir 中所有 .up.sql 文件
func StartPostgres(t *testing.T, migrationsDir string) *sql.DB {
	t.Helper()
	RequireDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "roster",
				"POSTGRES_PASSWORD": "roster",
				"POSTGRES_DB":       "roster",
			},
			// 初始化过程中 postgres 会重启一次
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}
	t.Cleanup(func() {
		_ = cont.Terminate(context.Background())
	})

	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get postgres host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get postgres port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://roster:roster@%s:%s/roster?sslmode=disable", host, port.Port())
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := waitFor(ctx, func(ctx context.Context) error { return db.PingContext(ctx) }); err != nil {
		t.Fatalf("postgres not ready: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		t.Fatalf("failed to list migrations: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no migrations found in %s", migrationsDir)
	}
	for _, file := range files {
		query, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("failed to read migration %s: %v", file, err)
		}
		// 没有参数时 pgx 使用简单协议，可以一次执行多条语句
		if _, err := db.ExecContext(ctx, string(query)); err != nil {
			t.Fatalf("failed to apply migration %s: %v", file, err)
		}
	}

	return db
}

// StartRedis 启动带密码的 Redis 容器并返回已经连通的客户端
func StartRedis(t *testing.T) *redis.Client {
	t.Helper()
	RequireDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--requirepass", redisPassword},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis: %v", err)
	}
	t.Cleanup(func() {
		_ = cont.Terminate(context.Background())
	})

	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get redis host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("failed to get redis port: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port.Port()),
		Password: redisPassword,
	})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	if err := waitFor(ctx, func(ctx context.Context) error { return rdb.Ping(ctx).Err() }); err != nil {
		t.Fatalf("redis not ready: %v", err)
	}

	return rdb
}

func waitFor(ctx context.Context, check func(ctx context.Context) error) error {
	for {
		err := check(ctx)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		case <-time.After(pollInterval):
		}
	}
}
