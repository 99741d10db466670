package repositories

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}, &DBOtp{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo domain.UserRepository, email string, link *string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:          email,
		FirstName:      "Ada",
		LastName:       "Lovelace",
		PasswordHash:   "hashed",
		ActivationLink: link,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepository_Create(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "a@b.com", nil)
	if user.ID == 0 {
		t.Fatal("expected generated id to be written back")
	}

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{Email: "a@b.com", PasswordHash: "other"})
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "a@b.com", nil)

	found, err := repo.FindByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.FirstName != "Ada" {
		t.Errorf("unexpected user: %+v", found)
	}

	if _, err := repo.FindByEmail(ctx, "missing@b.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Activate(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	link := "one-time-link"
	seedUser(t, repo, "a@b.com", &link)

	activated, err := repo.Activate(ctx, link)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !activated.IsActive || activated.ActivationLink != nil {
		t.Errorf("expected active user with cleared link, got %+v", activated)
	}

	t.Run("link is single use", func(t *testing.T) {
		if _, err := repo.Activate(ctx, link); !errors.Is(err, domain.ErrAlreadyActivated) {
			t.Fatalf("expected ErrAlreadyActivated, got %v", err)
		}
	})

	t.Run("unknown link", func(t *testing.T) {
		if _, err := repo.Activate(ctx, "never-issued"); !errors.Is(err, domain.ErrAlreadyActivated) {
			t.Fatalf("expected ErrAlreadyActivated, got %v", err)
		}
	})
}

func TestUserRepository_RefreshTokenHash(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo, "a@b.com", nil)

	hash := "hash-v1"
	if err := repo.SetRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("compare-and-set rotates only from the live hash", func(t *testing.T) {
		if err := repo.CompareAndSetRefreshTokenHash(ctx, user.ID, "hash-v1", "hash-v2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// A second rotation from the stale value loses
		err := repo.CompareAndSetRefreshTokenHash(ctx, user.ID, "hash-v1", "hash-v3")
		if !errors.Is(err, domain.ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}

		found, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.RefreshTokenHash == nil || *found.RefreshTokenHash != "hash-v2" {
			t.Errorf("expected hash-v2 to survive, got %v", found.RefreshTokenHash)
		}
	})

	t.Run("clear removes the session once", func(t *testing.T) {
		if err := repo.ClearRefreshTokenHash(ctx, user.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.ClearRefreshTokenHash(ctx, user.ID); !errors.Is(err, domain.ErrNoLiveSession) {
			t.Fatalf("expected ErrNoLiveSession, got %v", err)
		}
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo, "a@b.com", nil)

	if err := repo.UpdatePassword(ctx, user.ID, "hashed-new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.PasswordHash != "hashed-new" {
		t.Errorf("expected new hash, got %q", found.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, 999, "x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindAllAndDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	first := seedUser(t, repo, "a@b.com", nil)
	seedUser(t, repo, "b@b.com", nil)

	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	users, err = repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].Email != "b@b.com" {
		t.Errorf("unexpected survivors: %+v", users)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo, "a@b.com", nil)

	loaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded.FirstName = "Grace"
	loaded.AvatarURL = "http://files.local/avatars/x"

	if err := repo.Update(ctx, loaded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.FirstName != "Grace" || found.AvatarURL != "http://files.local/avatars/x" {
		t.Errorf("update not applied: %+v", found)
	}
}
