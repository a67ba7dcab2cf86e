package group

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/pkg/access"
)

type fakeGroupRepository struct {
	users map[string]*entities.User
	roles map[string]map[string]bool
}

func newFakeGroupRepository(users ...*entities.User) *fakeGroupRepository {
	f := &fakeGroupRepository{users: map[string]*entities.User{}, roles: map[string]map[string]bool{}}
	for _, u := range users {
		f.users[u.ID.String()] = u
	}
	return f
}

func (f *fakeGroupRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeGroupRepository) AddRole(_ context.Context, role *entities.UserRole) error {
	if f.roles[role.Role] == nil {
		f.roles[role.Role] = map[string]bool{}
	}
	f.roles[role.Role][role.UserID.String()] = true
	return nil
}

func (f *fakeGroupRepository) RemoveRole(_ context.Context, userID, role string) (int64, error) {
	if !f.roles[role][userID] {
		return 0, nil
	}
	delete(f.roles[role], userID)
	return 1, nil
}

func (f *fakeGroupRepository) ListUsersInRole(_ context.Context, role string) ([]*entities.User, error) {
	var out []*entities.User
	for id := range f.roles[role] {
		out = append(out, f.users[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func newUser(name string) *entities.User {
	return &entities.User{ID: uuid.New(), Username: name}
}

func TestGroupMembership(t *testing.T) {
	mario, luigi := newUser("mario"), newUser("luigi")
	repo := newFakeGroupRepository(mario, luigi)
	svc := NewGroupService(repo)
	manager := access.NewPrincipal(uuid.NewString(), []string{domain.RoleManager})
	ctx := context.Background()

	res, err := svc.AddToRole(ctx, manager, domain.RoleDeliveryCrew, mario.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "mario", res.Username)

	// adding twice is not an error
	_, err = svc.AddToRole(ctx, manager, domain.RoleDeliveryCrew, mario.ID.String())
	require.NoError(t, err)
	_, err = svc.AddToRole(ctx, manager, domain.RoleDeliveryCrew, luigi.ID.String())
	require.NoError(t, err)

	members, err := svc.ListRole(ctx, manager, domain.RoleDeliveryCrew)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "luigi", members[0].Username)

	// roles are independent of each other
	managers, err := svc.ListRole(ctx, manager, domain.RoleManager)
	require.NoError(t, err)
	assert.Empty(t, managers)

	_, err = svc.RemoveFromRole(ctx, manager, domain.RoleDeliveryCrew, mario.ID.String())
	require.NoError(t, err)

	_, err = svc.RemoveFromRole(ctx, manager, domain.RoleDeliveryCrew, mario.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotInRole)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupMembershipRequiresManager(t *testing.T) {
	mario := newUser("mario")
	svc := NewGroupService(newFakeGroupRepository(mario))
	ctx := context.Background()

	for _, p := range []access.Principal{
		access.NewPrincipal(uuid.NewString(), nil),
		access.NewPrincipal(uuid.NewString(), []string{domain.RoleDeliveryCrew}),
	} {
		for _, role := range []string{domain.RoleManager, domain.RoleDeliveryCrew} {
			_, err := svc.AddToRole(ctx, p, role, mario.ID.String())
			assert.ErrorIs(t, err, domain.ErrForbidden)
			_, err = svc.RemoveFromRole(ctx, p, role, mario.ID.String())
			assert.ErrorIs(t, err, domain.ErrForbidden)
			_, err = svc.ListRole(ctx, p, role)
			assert.ErrorIs(t, err, domain.ErrForbidden)
		}
	}

	_, err := svc.ListRole(ctx, access.Anonymous(), domain.RoleManager)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestGroupMembershipUnknownTargets(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepository())
	manager := access.NewPrincipal(uuid.NewString(), []string{domain.RoleManager})
	ctx := context.Background()

	_, err := svc.AddToRole(ctx, manager, domain.RoleManager, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.RemoveFromRole(ctx, manager, domain.RoleManager, "42")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.ListRole(ctx, manager, "Sommelier")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
