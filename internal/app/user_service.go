package app

import (
	"context"

	"github.com/atikxb/manufacturing-company-server-side/internal/clock"
	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

// UserStore persists accounts keyed by email.
type UserStore interface {
	Upsert(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	SetRole(ctx context.Context, email string, role domain.Role) error
}

// TokenIssuer mints a bearer credential for an upserted account.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// UserService handles the login/registration upsert and admin role grants.
type UserService struct {
	repo   UserStore
	issuer TokenIssuer
	clock  clock.Clock
}

func NewUserService(repo UserStore, issuer TokenIssuer, clk clock.Clock) *UserService {
	return &UserService{
		repo:   repo,
		issuer: issuer,
		clock:  clk,
	}
}

type UpsertUserInput struct {
	Email string
	Name  string
}

// Upsert creates or refreshes the account and returns it with a fresh token.
// New accounts start as customers; an existing account keeps its role.
func (s *UserService) Upsert(ctx context.Context, in UpsertUserInput) (domain.User, string, error) {
	if in.Email == "" {
		return domain.User{}, "", domain.ErrEmailRequired
	}

	user, err := s.repo.Upsert(ctx, domain.User{
		Email:     in.Email,
		Name:      in.Name,
		Role:      domain.RoleCustomer,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// GrantAdmin promotes the target account. The caller must already be an
// admin; a caller with no stored account is denied, not errored.
func (s *UserService) GrantAdmin(ctx context.Context, identity, email string) error {
	if identity == "" {
		return domain.ErrUnauthenticated
	}
	if email == "" {
		return domain.ErrEmailRequired
	}

	caller, err := s.repo.GetByEmail(ctx, identity)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.ErrForbidden
		}
		return err
	}
	if caller.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	return s.repo.SetRole(ctx, email, domain.RoleAdmin)
}
