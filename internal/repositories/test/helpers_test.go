package repositories_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-social/internal/repositories"
	"github.com/docker/go-connections/nat"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testPool      *pgxpool.Pool
	testContainer testcontainers.Container
	stdLogger     = log.NewStdLogger(io.Discard)
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	if err := startPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if testContainer != nil {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = testContainer.Terminate(termCtx)
	}
	os.Exit(code)
}

func startPostgres(ctx context.Context) error {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "social",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://postgres:postgres@%s:%s/social?sslmode=disable&search_path=social", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return err
	}
	testContainer = container

	host, err := container.Host(ctx)
	if err != nil {
		return err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return err
	}

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/social?sslmode=disable&search_path=social", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	testPool = pool

	return applyMigrations(ctx, pool)
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "..", "migrations")
	entries, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, path := range entries {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if _, execErr := pool.Exec(ctx, string(content)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(path), execErr)
		}
	}
	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `
		TRUNCATE TABLE
			social.profiles_projection,
			social.videos_projection,
			social.follows,
			social.suggestion_dismissals,
			social.suggestion_logs,
			social.inbox_events,
			social.outbox_events
		RESTART IDENTITY
	`)
	require.NoError(t, err)
}

func newFollowRepo() *repositories.FollowRepository {
	return repositories.NewFollowRepository(testPool, stdLogger)
}

func newSuggestionRepo() *repositories.SuggestionRepository {
	return repositories.NewSuggestionRepository(testPool, stdLogger)
}

func newProfileRepo() *repositories.ProfileProjectionRepository {
	return repositories.NewProfileProjectionRepository(testPool, stdLogger)
}

func newVideoRepo() *repositories.VideoProjectionRepository {
	return repositories.NewVideoProjectionRepository(testPool, stdLogger)
}

func newSuggestionLogRepo() *repositories.SuggestionLogRepository {
	return repositories.NewSuggestionLogRepository(testPool, stdLogger)
}

func newInboxRepo() *repositories.InboxRepository {
	return repositories.NewInboxRepository(testPool, stdLogger)
}

func newOutboxRepo() *repositories.OutboxRepository {
	return repositories.NewOutboxRepository(testPool, stdLogger)
}

// seedProfile 写入一条可被发现的资料投影。
func seedProfile(t *testing.T, userID uuid.UUID, username string) {
	t.Helper()
	err := newProfileRepo().Upsert(context.Background(), nil, repositories.UpsertProfileProjectionInput{
		UserID:       userID,
		Username:     username,
		Discoverable: true,
		Version:      1,
	})
	require.NoError(t, err)
}

// seedFollow 直接写入关注边,不经过仓储也不产生事件。
func seedFollow(t *testing.T, followerID, followeeID uuid.UUID) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO social.follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		followerID, followeeID)
	require.NoError(t, err)
}

func stringPtr(value string) *string {
	return &value
}

func int64Ptr(value int64) *int64 {
	return &value
}

func timePtr(value time.Time) *time.Time {
	return &value
}
