package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = &User{ID: u.ID, Name: u.Name, Email: u.Email}
	return nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return ErrEmailExists
		}
	}
	r.users[u.ID] = &User{ID: u.ID, Name: u.Name, Email: u.Email}
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func TestCreateTrimsAndValidates(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.Create(context.Background(), CreateRequest{Name: "  Alice ", Email: " alice@example.com "})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotZero(t, u.ID)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Bob", Email: "   "})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "", Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Bob", Email: "dup@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdatePartial(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	newName := "  Alicia "
	updated, err := svc.Update(context.Background(), u.ID, UpdateRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name, "names are stored trimmed, as on create")
	assert.Equal(t, "alice@example.com", updated.Email, "email untouched")

	newEmail := "alicia@example.com"
	updated, err = svc.Update(context.Background(), u.ID, UpdateRequest{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name, "name untouched")
	assert.Equal(t, "alicia@example.com", updated.Email)
}

func TestUpdateRejectsBlankFields(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	blank := "   "
	_, err = svc.Update(context.Background(), u.ID, UpdateRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Update(context.Background(), u.ID, UpdateRequest{Email: &blank})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestUpdateUnknownUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	name := "Ghost"
	_, err := svc.Update(context.Background(), 42, UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.ID))

	_, err = svc.GetByID(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound, "deleting a missing user reports not found")
}
