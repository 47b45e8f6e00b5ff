package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/companies/internal/repository"
)

const (
	PolicyClaim = "claim"
	PolicyStore = "store"
)

// RoleChecker decides whether a principal holds a role. Every protected
// route goes through the same checker, so the revocation behaviour is
// whatever the configured implementation provides.
type RoleChecker interface {
	HasRole(ctx context.Context, p *Principal, role string) (bool, error)
}

// ClaimRoleChecker trusts the role claim. A role change is only seen once
// the user logs in again.
type ClaimRoleChecker struct{}

func (ClaimRoleChecker) HasRole(ctx context.Context, p *Principal, role string) (bool, error) {
	if p == nil {
		return false, nil
	}

	return p.Role == role, nil
}

// StoreRoleChecker re-reads the user on every call, so role changes and
// deleted accounts take effect immediately at the cost of one lookup.
type StoreRoleChecker struct {
	users repository.UserRepository
}

func NewStoreRoleChecker(users repository.UserRepository) *StoreRoleChecker {
	return &StoreRoleChecker{users: users}
}

func (c *StoreRoleChecker) HasRole(ctx context.Context, p *Principal, role string) (bool, error) {
	if p == nil {
		return false, nil
	}

	user, err := c.users.FindByID(ctx, p.UserID)

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load user %s: %w", p.UserID, err)
	}

	return user.Role == role, nil
}

func NewRoleChecker(policy string, users repository.UserRepository) (RoleChecker, error) {
	switch policy {
	case PolicyClaim, "":
		return ClaimRoleChecker{}, nil
	case PolicyStore:
		return NewStoreRoleChecker(users), nil
	default:
		return nil, fmt.Errorf("unknown role policy %q", policy)
	}
}
