package services

import (
	"context"
	"testing"

	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/testutil"
	"github.com/monocle-dev/companies/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyCreateAndGet(t *testing.T) {
	store := testutil.OpenTestStore(t)
	svc := NewCompanyService(store.Companies, nil)
	ctx := context.Background()

	company, err := svc.Create(ctx, CompanyRequest{Name: " Acme ", Industry: "Tools", Location: "Springfield"})
	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)
	assert.Equal(t, "Acme", company.Name)

	got, err := svc.Get(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tools", got.Industry)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Create(ctx, CompanyRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompanyListIsNeverNil(t *testing.T) {
	store := testutil.OpenTestStore(t)
	svc := NewCompanyService(store.Companies, nil)

	companies, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestCompanyUpdateOnlyTouchesSuppliedFields(t *testing.T) {
	store := testutil.OpenTestStore(t)
	notifier := &testutil.RecordingNotifier{}
	svc := NewCompanyService(store.Companies, notifier)
	ctx := context.Background()

	company, err := svc.Create(ctx, CompanyRequest{Name: "Acme", Industry: "Tools", Location: "Springfield"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, company.ID, UpdateCompanyRequest{Location: ptr("Shelbyville")})
	require.NoError(t, err)

	assert.Equal(t, company.ID, updated.ID)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Tools", updated.Industry)
	assert.Equal(t, "Shelbyville", updated.Location)

	assert.Equal(t, []testutil.Refresh{{CompanyID: company.ID, Reason: types.ReasonCompanyUpdated}}, notifier.Events())
}

func TestCompanyUpdateErrors(t *testing.T) {
	store := testutil.OpenTestStore(t)
	svc := NewCompanyService(store.Companies, nil)
	ctx := context.Background()
	company := seedCompany(t, store, "Acme")

	_, err := svc.Update(ctx, company.ID, UpdateCompanyRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, company.ID, UpdateCompanyRequest{Name: ptr("")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(ctx, "missing", UpdateCompanyRequest{Name: ptr("Other")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompanyDeleteCascades(t *testing.T) {
	store := testutil.OpenTestStore(t)
	notifier := &testutil.RecordingNotifier{}
	svc := NewCompanyService(store.Companies, notifier)
	ctx := context.Background()

	acme := seedCompany(t, store, "Acme")
	other := seedCompany(t, store, "Other")
	seedReview(t, store, acme.ID, "u1", 4)
	seedReview(t, store, other.ID, "u1", 2)
	seedAccomplishment(t, store, acme.ID, "Launch", nil)

	require.NoError(t, svc.Delete(ctx, acme.ID))

	_, err := svc.Get(ctx, acme.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	reviews, err := store.Reviews.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	accomplishments, err := store.Accomplishments.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, accomplishments)

	// Other companies keep their data.
	reviews, err = store.Reviews.ListByCompany(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	assert.ErrorIs(t, svc.Delete(ctx, acme.ID), repository.ErrNotFound)

	assert.Equal(t, []testutil.Refresh{{CompanyID: acme.ID, Reason: types.ReasonCompanyDeleted}}, notifier.Events())
}

func TestCompanyDeleteMissing(t *testing.T) {
	store := testutil.OpenTestStore(t)
	svc := NewCompanyService(store.Companies, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), repository.ErrNotFound)
}
