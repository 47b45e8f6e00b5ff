package repository_test

import (
	"context"
	"testing"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDuplicateEmail(t *testing.T) {
	store := testutil.OpenTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Users.Create(ctx, &models.User{Email: "a@example.com", PasswordHash: "x", Role: models.RoleUser}))

	err := store.Users.Create(ctx, &models.User{Email: "a@example.com", PasswordHash: "y", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	user, err := store.Users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "x", user.PasswordHash)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestReviewUpdateAuthorized(t *testing.T) {
	store := testutil.OpenTestStore(t)
	ctx := context.Background()

	company := &models.Company{Name: "Acme"}
	require.NoError(t, store.Companies.Create(ctx, company))

	review := &models.Review{CompanyID: company.ID, UserID: "author", Rating: 3}
	require.NoError(t, store.Reviews.Create(ctx, review))

	rating := 5.0
	patch := models.ReviewPatch{Rating: &rating}

	_, err := store.Reviews.UpdateAuthorized(ctx, review.ID, "intruder", false, patch)
	assert.ErrorIs(t, err, repository.ErrNotAuthor)

	unchanged, err := store.Reviews.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, unchanged.Rating)

	updated, err := store.Reviews.UpdateAuthorized(ctx, review.ID, "author", false, patch)
	require.NoError(t, err)
	assert.Equal(t, 5.0, updated.Rating)

	text := "moderated"
	moderated, err := store.Reviews.UpdateAuthorized(ctx, review.ID, "admin", true, models.ReviewPatch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "moderated", moderated.Text)
	assert.Equal(t, 5.0, moderated.Rating)

	_, err = store.Reviews.UpdateAuthorized(ctx, "missing", "author", false, patch)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateAndDeleteMissingRecords(t *testing.T) {
	store := testutil.OpenTestStore(t)
	ctx := context.Background()

	name := "x"

	_, err := store.Companies.Update(ctx, "missing", models.CompanyPatch{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Accomplishments.Update(ctx, "missing", models.AccomplishmentPatch{Title: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, store.Companies.Delete(ctx, "missing"), repository.ErrNotFound)
	assert.ErrorIs(t, store.Reviews.Delete(ctx, "missing"), repository.ErrNotFound)
	assert.ErrorIs(t, store.Accomplishments.Delete(ctx, "missing"), repository.ErrNotFound)
}

func TestBackendPing(t *testing.T) {
	store := testutil.OpenTestStore(t)

	assert.Equal(t, "sqlite", store.Name())
	assert.NoError(t, store.Ping(context.Background()))
}
