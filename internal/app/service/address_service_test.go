package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"stylemart/internal/common"
	"stylemart/internal/domain/model"
)

type memAddressRepo struct {
	mu        sync.Mutex
	addresses map[string]*model.Address
}

func newMemAddressRepo() *memAddressRepo {
	return &memAddressRepo{addresses: map[string]*model.Address{}}
}

func (r *memAddressRepo) Create(ctx context.Context, address *model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *address
	r.addresses[address.ID] = &clone
	return nil
}

func (r *memAddressRepo) FindByID(ctx context.Context, id string) (*model.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.addresses[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memAddressRepo) ListByUser(ctx context.Context, userID string) ([]model.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addresses := []model.Address{}
	for _, a := range r.addresses {
		if a.UserID == userID {
			addresses = append(addresses, *a)
		}
	}
	return addresses, nil
}

func (r *memAddressRepo) Update(ctx context.Context, address *model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[address.ID]; !ok {
		return common.ErrNotFound
	}
	clone := *address
	r.addresses[address.ID] = &clone
	return nil
}

func (r *memAddressRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.addresses, id)
	return nil
}

func validAddressRequest() AddressRequest {
	return AddressRequest{
		FullName:   "A B",
		Street:     "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
}

func TestAddressCreate_Validation(t *testing.T) {
	t.Parallel()

	s := NewAddressService(newMemAddressRepo())

	req := validAddressRequest()
	req.Street = ""
	_, err := s.Create(context.Background(), "user-1", req)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestAddressCreate_ScopedToUser(t *testing.T) {
	t.Parallel()

	s := NewAddressService(newMemAddressRepo())

	created, err := s.Create(context.Background(), "user-1", validAddressRequest())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "user-1", created.UserID)

	mine, err := s.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := s.List(context.Background(), "user-2")
	require.NoError(t, err)
	require.Empty(t, theirs)
}

func TestAddressUpdate_CrossUserForbidden(t *testing.T) {
	t.Parallel()

	s := NewAddressService(newMemAddressRepo())

	created, err := s.Create(context.Background(), "user-1", validAddressRequest())
	require.NoError(t, err)

	req := validAddressRequest()
	req.City = "Shelbyville"
	_, err = s.Update(context.Background(), "user-2", created.ID, req)
	require.ErrorIs(t, err, common.ErrForbidden)

	updated, err := s.Update(context.Background(), "user-1", created.ID, req)
	require.NoError(t, err)
	require.Equal(t, "Shelbyville", updated.City)
}

func TestAddressDelete_CrossUserForbidden(t *testing.T) {
	t.Parallel()

	s := NewAddressService(newMemAddressRepo())

	created, err := s.Create(context.Background(), "user-1", validAddressRequest())
	require.NoError(t, err)

	err = s.Delete(context.Background(), "user-2", created.ID)
	require.ErrorIs(t, err, common.ErrForbidden)

	err = s.Delete(context.Background(), "user-1", created.ID)
	require.NoError(t, err)

	err = s.Delete(context.Background(), "user-1", created.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}
