package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mparker/character-vault/internal/api"
	"github.com/mparker/character-vault/internal/config"
	"github.com/mparker/character-vault/internal/domain"
	"github.com/mparker/character-vault/internal/repository"
	repoPostgres "github.com/mparker/character-vault/internal/repository/postgres"
	"github.com/mparker/character-vault/internal/rules"
	"github.com/mparker/character-vault/internal/service"
	"github.com/mparker/character-vault/internal/websocket"
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
		tcPostgres.WithDatabase("test_character_vault"),
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
		&domain.Campaign{},
		&domain.Character{},
		&domain.Companion{},
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
		"companions",
		"characters",
		"campaigns",
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
		Port:            "0", // Random port
		Environment:     "test",
		JWTSecret:       "test-jwt-secret-key-for-testing-only",
		RulesAPIURL:     "http://127.0.0.1:0", // Overridden by the test server
		RulesAPITimeout: 5 * time.Second,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server    *httptest.Server
	RulesStub *httptest.Server
	DB        *TestDB
	Repos     *repository.Repositories
	Services  *service.Services
	Hub       *websocket.Hub
	Config    *config.Config
}

// NewTestServer creates a complete test server with all dependencies. The
// rules API is stubbed with rulesHandler; pass nil for a handler that 404s
// every lookup, which character CRUD flows never reach anyway.
func NewTestServer(t *testing.T, rulesHandler http.Handler) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	if rulesHandler == nil {
		rulesHandler = http.NotFoundHandler()
	}
	rulesStub := httptest.NewServer(rulesHandler)
	cfg.RulesAPIURL = rulesStub.URL

	repos := repoPostgres.NewRepositories(testDB.DB)
	rulesClient := rules.NewClient(cfg.RulesAPIURL, cfg.RulesAPITimeout)
	hub := websocket.NewHub()
	go hub.Run()

	services := service.NewServices(repos, rulesClient, cfg)
	router := api.NewRouter(services, hub)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:    server,
		RulesStub: rulesStub,
		DB:        testDB,
		Repos:     repos,
		Services:  services,
		Hub:       hub,
		Config:    cfg,
	}

	t.Cleanup(func() {
		server.Close()
		rulesStub.Close()
		hub.Stop()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL with token
func (ts *TestServer) WebSocketURL(token string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/ws?token=%s", wsURL, token)
}
