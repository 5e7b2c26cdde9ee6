package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
	"github.com/atikxb/manufacturing-company-server-side/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewUserRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Upsert creates then refreshes without touching role", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		created, err := repo.Upsert(ctx, domain.User{
			Email:     "buyer@example.com",
			Name:      "Buyer",
			Role:      domain.RoleCustomer,
			CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Role != domain.RoleCustomer {
			t.Fatalf("expected customer role, got %q", created.Role)
		}

		if err := repo.SetRole(ctx, "buyer@example.com", domain.RoleAdmin); err != nil {
			t.Fatalf("set role: %v", err)
		}

		// Re-login sends the customer default again; the stored admin role
		// must survive.
		refreshed, err := repo.Upsert(ctx, domain.User{
			Email:     "buyer@example.com",
			Name:      "Buyer Renamed",
			Role:      domain.RoleCustomer,
			CreatedAt: now.Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if refreshed.Role != domain.RoleAdmin {
			t.Fatalf("expected admin role preserved, got %q", refreshed.Role)
		}
		if refreshed.Name != "Buyer Renamed" {
			t.Fatalf("expected name updated, got %q", refreshed.Name)
		}
	})

	t.Run("GetByEmail returns ErrUserNotFound for unknown email", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.GetByEmail(ctx, "ghost@example.com"); err != domain.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("SetRole rejects unknown target", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if err := repo.SetRole(ctx, "ghost@example.com", domain.RoleAdmin); err != domain.ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}
