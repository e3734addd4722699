package testutil

import (
	"context"
	"fmt"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/authly/authly-rhythm/internal/api"
	"github.com/authly/authly-rhythm/internal/config"
	"github.com/authly/authly-rhythm/internal/domain"
	"github.com/authly/authly-rhythm/internal/repository"
	repoPostgres "github.com/authly/authly-rhythm/internal/repository/postgres"
	"github.com/authly/authly-rhythm/internal/service"
	"github.com/authly/authly-rhythm/internal/upload"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_authly_rhythm"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Chart{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"charts",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		AuthSecret:         "test-auth-secret-key-for-testing-only",
		JWTExpirationHours: 1,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Staging  *upload.Staging
	CDN      *FakeCDN
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies.
// The fake CDN really pulls staged uploads back through the server's
// public URL, so the full push/pull round trip is exercised.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	// The router needs the server's own URL (for pull-upload callbacks)
	// before the server can exist, so grab the listener first.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to open listener: %v", err)
	}
	cfg.BaseURL = "http://" + listener.Addr().String()

	fakeCDN := NewFakeCDN(t)
	cfg.CDNURL = fakeCDN.Server.URL
	cfg.CDNToken = "test-cdn-token"

	repos := repoPostgres.NewRepositories(testDB.DB)
	staging := upload.NewStaging()
	services := service.NewServices(repos, staging, fakeCDN.Client(), cfg)

	server := httptest.NewUnstartedServer(api.NewRouter(services))
	server.Listener.Close()
	server.Listener = listener
	server.Start()

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Staging:  staging,
		CDN:      fakeCDN,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + path
}

// Token issues a signed token for username via the auth service.
func (ts *TestServer) Token(t *testing.T, username string) string {
	t.Helper()

	token, err := ts.Services.Auth.IssueToken(username)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}
