package mysql

import (
	"context"
	"errors"
	"testing"

	"loanchain-web/internal/domain/session"
	userDomain "loanchain-web/internal/domain/user"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the users table.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userDomain.User{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeUser(username string, role session.Role) *userDomain.User {
	return &userDomain.User{
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
		Name:         "Test " + username,
		Email:        username + "@loanchain.com",
	}
}

func TestCreateAndGetByUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := makeUser("alice", session.RoleUser)
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.Username != "alice" || got.Role != session.RoleUser || got.Email != "alice@loanchain.com" {
		t.Errorf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, userDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeUser("bob", session.RoleUser)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeUser("bob", session.RoleAdmin)); err == nil {
		t.Fatalf("expected unique index violation on duplicate username")
	}
}

func TestExistsByUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	ok, err := repo.ExistsByUsername(ctx, "carol")
	if err != nil || ok {
		t.Fatalf("before create: ok=%v err=%v, want false/nil", ok, err)
	}
	if err := repo.Create(ctx, makeUser("carol", session.RoleUser)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ok, err = repo.ExistsByUsername(ctx, "carol")
	if err != nil || !ok {
		t.Fatalf("after create: ok=%v err=%v, want true/nil", ok, err)
	}
}

func TestSeed_SkipsExisting(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seed := []userDomain.User{*makeUser("admin", session.RoleAdmin), *makeUser("user", session.RoleUser)}
	if err := repo.Seed(ctx, seed); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// second run must be a no-op, not a unique violation
	if err := repo.Seed(ctx, seed); err != nil {
		t.Fatalf("Seed again: %v", err)
	}

	var n int64
	if err := db.Model(&userDomain.User{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}
	admin, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByUsername(admin): %v", err)
	}
	if !admin.Record().IsAdmin() {
		t.Fatalf("seeded admin lost its role: %+v", admin)
	}
}
