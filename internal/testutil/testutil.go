package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/monocle-dev/companies/db"
	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
)

const TestSecret = "this-is-a-test-secret-with-32-bytes!"

// OpenTestStore opens a migrated in-memory SQLite store private to the
// calling test. The store is closed via t.Cleanup.
func OpenTestStore(t *testing.T) *repository.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())

	gormDB, err := db.ConnectDatabase(db.DriverSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// Shared-cache SQLite locks per table; one connection keeps writes serial.
	sqlDB.SetMaxOpenConns(1)

	if err := db.MigrateDatabase(gormDB); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	store := repository.NewGormStore(gormDB)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store
}

func NewTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	tokens, err := auth.NewTokenService(TestSecret, time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	return tokens
}

// CreateUser stores a user with a real bcrypt digest of password.
func CreateUser(t *testing.T, store *repository.Store, email, password, role string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{Email: email, PasswordHash: hash, Role: role}
	if err := store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

// Principal returns the principal a verified token for user would carry.
func Principal(user *models.User) *auth.Principal {
	return &auth.Principal{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func BearerToken(t *testing.T, tokens *auth.TokenService, user *models.User) string {
	t.Helper()

	token, _, err := tokens.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return "Bearer " + token
}

// Refresh is one notification captured by RecordingNotifier.
type Refresh struct {
	CompanyID string
	Reason    string
}

type RecordingNotifier struct {
	mu     sync.Mutex
	events []Refresh
}

func (n *RecordingNotifier) BroadcastRefresh(companyID, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Refresh{CompanyID: companyID, Reason: reason})
}

func (n *RecordingNotifier) Events() []Refresh {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Refresh(nil), n.events...)
}
