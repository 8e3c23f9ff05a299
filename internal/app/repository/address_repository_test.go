package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/db"
)

func strPtr(s string) *string { return &s }

func setupAddressRepoTest(t *testing.T) AddressRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewAddressRepository(testDB)
}

func TestAddressRepository_CreateNew(t *testing.T) {
	repo := setupAddressRepoTest(t)

	address := &model.Address{
		Street:     "Main Street",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Locality:   "Downtown",
		Number:     "12B",
	}
	require.NoError(t, repo.CreateNew(nil, address))
	assert.NotZero(t, address.ID)
}

func TestAddressRepository_CreateNew_RejectsIncomplete(t *testing.T) {
	repo := setupAddressRepoTest(t)

	tests := []struct {
		name    string
		address model.Address
	}{
		{
			name: "Missing street",
			address: model.Address{
				City: "Springfield", State: "IL", PostalCode: "62701", Locality: "Downtown",
			},
		},
		{
			name: "Missing city",
			address: model.Address{
				Street: "Main Street", State: "IL", PostalCode: "62701", Locality: "Downtown",
			},
		},
		{
			name: "Missing postal code",
			address: model.Address{
				Street: "Main Street", City: "Springfield", State: "IL", Locality: "Downtown",
			},
		},
		{
			name: "Missing locality",
			address: model.Address{
				Street: "Main Street", City: "Springfield", State: "IL", PostalCode: "62701",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := tt.address
			err := repo.CreateNew(nil, &addr)
			assert.ErrorIs(t, err, ErrAddressIncomplete)
			assert.Zero(t, addr.ID)
		})
	}
}

func TestAddressRepository_CreateNew_NumberOptional(t *testing.T) {
	repo := setupAddressRepoTest(t)

	address := &model.Address{
		Street:     "Main Street",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Locality:   "Downtown",
	}
	require.NoError(t, repo.CreateNew(nil, address))
	assert.NotZero(t, address.ID)
}

func TestAddressRepository_ResolveForUpdate_MergesExisting(t *testing.T) {
	repo := setupAddressRepoTest(t)

	stored := &model.Address{
		Street:     "Main Street",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Locality:   "Downtown",
		Number:     "12B",
	}
	require.NoError(t, repo.CreateNew(nil, stored))

	merged, err := repo.ResolveForUpdate(nil, stored.ID, AddressMutation{
		Street: strPtr("Oak Avenue"),
		City:   strPtr("Shelbyville"),
	})
	require.NoError(t, err)

	assert.Equal(t, stored.ID, merged.ID)
	assert.Equal(t, "Oak Avenue", merged.Street)
	assert.Equal(t, "Shelbyville", merged.City)

	// fields absent from the overlay keep their stored values
	assert.Equal(t, "IL", merged.State)
	assert.Equal(t, "62701", merged.PostalCode)
	assert.Equal(t, "Downtown", merged.Locality)
	assert.Equal(t, "12B", merged.Number)
}

func TestAddressRepository_ResolveForUpdate_CreatesWhenMissing(t *testing.T) {
	repo := setupAddressRepoTest(t)

	created, err := repo.ResolveForUpdate(nil, 999, AddressMutation{
		Street:     strPtr("Oak Avenue"),
		City:       strPtr("Shelbyville"),
		State:      strPtr("IL"),
		PostalCode: strPtr("62565"),
		Locality:   strPtr("Old Town"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, uint(999), created.ID)
	assert.Equal(t, "Oak Avenue", created.Street)
}

func TestAddressRepository_ResolveForUpdate_IncompleteFresh(t *testing.T) {
	repo := setupAddressRepoTest(t)

	// Unknown id with a partial overlay cannot produce a valid address
	_, err := repo.ResolveForUpdate(nil, 999, AddressMutation{
		Street: strPtr("Oak Avenue"),
	})
	assert.ErrorIs(t, err, ErrAddressIncomplete)
}
