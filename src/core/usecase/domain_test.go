package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainguard/src/core/domain"
)

// fakeDomainRepo hands out pointers to its stored records, and DeleteDomain
// blanks the record in place, so callers holding a fetched pointer see it
// change shape after deletion.
type fakeDomainRepo struct {
	domains   map[string]*domain.OrganizationDomain
	deleteErr error
	deleted   []string
}

func newFakeDomainRepo(ds ...*domain.OrganizationDomain) *fakeDomainRepo {
	repo := &fakeDomainRepo{domains: map[string]*domain.OrganizationDomain{}}
	for _, d := range ds {
		repo.domains[d.ID] = d
	}
	return repo
}

func (f *fakeDomainRepo) Health(context.Context) error { return nil }

func (f *fakeDomainRepo) ListDomains(_ context.Context, orgID string) ([]domain.OrganizationDomain, error) {
	var out []domain.OrganizationDomain
	for _, d := range f.domains {
		if d.OrganizationID == orgID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDomainRepo) GetDomain(_ context.Context, orgID, domainID string) (*domain.OrganizationDomain, error) {
	d, ok := f.domains[domainID]
	if !ok || d.OrganizationID != orgID {
		return nil, domain.NewNotFoundError("domain")
	}
	return d, nil
}

func (f *fakeDomainRepo) CreateDomain(_ context.Context, d *domain.OrganizationDomain) (*domain.OrganizationDomain, error) {
	for _, existing := range f.domains {
		if existing.Name == d.Name {
			return nil, domain.NewConflictError("domain already exists")
		}
	}
	created := *d
	created.ID = "dmn_new"
	f.domains[created.ID] = &created
	return &created, nil
}

func (f *fakeDomainRepo) DeleteDomain(_ context.Context, orgID, domainID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	d, ok := f.domains[domainID]
	if !ok || d.OrganizationID != orgID {
		return domain.NewNotFoundError("domain")
	}
	*d = domain.OrganizationDomain{ID: d.ID}
	delete(f.domains, domainID)
	f.deleted = append(f.deleted, domainID)
	return nil
}

func exampleDomain() *domain.OrganizationDomain {
	return &domain.OrganizationDomain{
		ID:             "dmn_1",
		OrganizationID: "org_1",
		Name:           "example.com",
		EnrollmentMode: domain.EnrollmentAutomaticInvitation,
		Verified:       true,
	}
}

func TestRemoveDomainKeepsNameAfterDelete(t *testing.T) {
	stored := exampleDomain()
	repo := newFakeDomainRepo(stored)
	svc := NewDomainService(repo, discardLogger())

	removed, err := svc.RemoveDomain(context.Background(), signedIn(), "dmn_1")

	require.NoError(t, err)
	assert.Equal(t, "example.com", removed.Name)
	assert.Equal(t, "dmn_1", removed.ID)
	assert.Empty(t, stored.Name, "fake should have reshaped the stored record")
	assert.Equal(t, []string{"dmn_1"}, repo.deleted)
}

func TestRemoveDomainOtherOrganization(t *testing.T) {
	d := exampleDomain()
	d.OrganizationID = "org_2"
	repo := newFakeDomainRepo(d)
	svc := NewDomainService(repo, discardLogger())

	_, err := svc.RemoveDomain(context.Background(), signedIn(), "dmn_1")

	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, repo.deleted)
}

func TestRemoveDomainDeleteFailure(t *testing.T) {
	repo := newFakeDomainRepo(exampleDomain())
	repo.deleteErr = errors.New("connection reset")
	svc := NewDomainService(repo, discardLogger())

	removed, err := svc.RemoveDomain(context.Background(), signedIn(), "dmn_1")

	assert.Nil(t, removed)
	assert.EqualError(t, err, "connection reset")
}

func TestDomainServiceRequiresOrganization(t *testing.T) {
	svc := NewDomainService(newFakeDomainRepo(exampleDomain()), discardLogger())
	ctx := context.Background()

	_, err := svc.ListDomains(ctx, domain.SignedOut())
	assert.True(t, domain.IsUnauthorized(err))

	noOrg := signedIn()
	noOrg.OrgID = ""
	_, err = svc.GetDomain(ctx, noOrg, "dmn_1")
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.GetDomain(ctx, signedIn(), "")
	assert.True(t, domain.IsValidationError(err))
}

func TestAddDomain(t *testing.T) {
	repo := newFakeDomainRepo(exampleDomain())
	svc := NewDomainService(repo, discardLogger())
	ctx := context.Background()

	created, err := svc.AddDomain(ctx, signedIn(), AddDomainInput{Name: "  Corp.Example.ORG. "})
	require.NoError(t, err)
	assert.Equal(t, "corp.example.org", created.Name)
	assert.Equal(t, "org_1", created.OrganizationID)
	assert.Equal(t, domain.EnrollmentManualInvitation, created.EnrollmentMode)

	_, err = svc.AddDomain(ctx, signedIn(), AddDomainInput{Name: "example.com"})
	assert.True(t, domain.IsConflict(err))

	_, err = svc.AddDomain(ctx, signedIn(), AddDomainInput{Name: "localhost"})
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.AddDomain(ctx, signedIn(), AddDomainInput{Name: "b.example.com", EnrollmentMode: "sometimes"})
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "enrollment_mode", derr.Field)
}

func TestListDomainsScopedToOrganization(t *testing.T) {
	other := exampleDomain()
	other.ID = "dmn_2"
	other.OrganizationID = "org_2"
	svc := NewDomainService(newFakeDomainRepo(exampleDomain(), other), discardLogger())

	got, err := svc.ListDomains(context.Background(), signedIn())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dmn_1", got[0].ID)
}
