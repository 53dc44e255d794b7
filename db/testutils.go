package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// OpenTestDB connects to postgresURL and makes sure the schema exists.
func OpenTestDB(postgresURL string) (*sqlx.DB, error) {
	dbConn, err := Open(postgresURL)
	if err != nil {
		return nil, err
	}

	if err := InitializeDatabaseSchema(dbConn); err != nil {
		return nil, err
	}

	return dbConn, nil
}

func StartPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "db"
	dbUser := "user"
	dbPassword := "password"

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("could not start postgres container: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		return nil, "", fmt.Errorf("could not get postgres connection string: %w", err)
	}

	return postgresContainer, connStr, nil
}

// StartRedisContainer returns the container and its host:port address.
func StartRedisContainer(ctx context.Context) (testcontainers.Container, string, error) {
	redisContainer, err := redis.RunContainer(ctx,
		testcontainers.WithImage("docker.io/redis:7"),
		redis.WithLogLevel(redis.LogLevelVerbose),
	)
	if err != nil {
		return nil, "", fmt.Errorf("could not start redis container: %w", err)
	}

	uri, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("could not get redis connection string: %w", err)
	}

	return redisContainer, strings.TrimPrefix(uri, "redis://"), nil
}
