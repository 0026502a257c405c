package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/app/repositories"
	"github.com/shashiranjanraj/offerdesk/pkg/cache"
	"github.com/shashiranjanraj/offerdesk/pkg/database"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.Offer{}))
	t.Cleanup(func() { database.Close(db) }) //nolint:errcheck
	return db
}

func ann() models.User {
	return models.User{ID: 1, FirstName: "Ann", LastName: "Lee", Age: 30, Email: "ann@x", Role: "customer", Phone: "555"}
}

func TestCreateFind(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))

	require.NoError(t, users.Create(ctx, ann()))

	got, err := users.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ann(), got)

	_, err = users.Find(ctx, 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreateDuplicateKeepsExisting(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))
	require.NoError(t, users.Create(ctx, ann()))

	other := ann()
	other.FirstName = "Bob"
	assert.ErrorIs(t, users.Create(ctx, other), repositories.ErrDuplicate)

	got, err := users.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
}

func TestAllOrderedAndNeverNil(t *testing.T) {
	ctx := context.Background()
	offers := repositories.New[models.Offer](openDB(t))

	all, err := offers.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	require.NoError(t, offers.Create(ctx, models.Offer{ID: 3, OrderID: 1, ExecutorID: 2}))
	require.NoError(t, offers.Create(ctx, models.Offer{ID: 1, OrderID: 1, ExecutorID: 2}))

	all, err = offers.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[1].ID)
}

func TestReplaceWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))
	require.NoError(t, users.Create(ctx, ann()))

	require.NoError(t, users.Replace(ctx, 1, models.User{ID: 1, FirstName: "Ann"}))

	got, err := users.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 1, FirstName: "Ann"}, got)
}

func TestReplaceMovesID(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))
	require.NoError(t, users.Create(ctx, ann()))

	moved := ann()
	moved.ID = 9
	require.NoError(t, users.Replace(ctx, 1, moved))

	_, err := users.Find(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	got, err := users.Find(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
}

func TestReplaceMoveOntoTakenID(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))
	require.NoError(t, users.Create(ctx, ann()))
	bob := ann()
	bob.ID, bob.FirstName = 2, "Bob"
	require.NoError(t, users.Create(ctx, bob))

	moved := ann()
	moved.ID = 2
	assert.ErrorIs(t, users.Replace(ctx, 1, moved), repositories.ErrDuplicate)

	got, err := users.Find(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.FirstName)
}

func TestReplaceMissing(t *testing.T) {
	ctx := context.Background()
	orders := repositories.New[models.Order](openDB(t))

	err := orders.Replace(ctx, 5, models.Order{ID: 5, Name: "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	users := repositories.New[models.User](db)
	offers := repositories.New[models.Offer](db)

	require.NoError(t, users.Create(ctx, ann()))
	require.NoError(t, offers.Create(ctx, models.Offer{ID: 1, OrderID: 1, ExecutorID: 1}))

	require.NoError(t, users.Delete(ctx, 1))
	assert.ErrorIs(t, users.Delete(ctx, 1), repositories.ErrNotFound)

	// No cascade.
	offer, err := offers.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, offer.ExecutorID)
}

func TestOrderDatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	orders := repositories.New[models.Order](openDB(t))

	start, err := models.ParseDate("01/02/2023")
	require.NoError(t, err)
	end, err := models.ParseDate("2/15/2023")
	require.NoError(t, err)

	require.NoError(t, orders.Create(ctx, models.Order{ID: 50, Name: "Paint fence", StartDate: start, EndDate: end, Price: 100}))

	got, err := orders.Find(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, "01/02/2023", models.FormatDate(got.StartDate))
	assert.Equal(t, "02/15/2023", models.FormatDate(got.EndDate))
}

func TestCreateManyRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))

	a, b := ann(), ann()
	b.FirstName = "Twin"
	assert.ErrorIs(t, users.CreateMany(ctx, []models.User{a, b}), repositories.ErrDuplicate)
}

func TestCachedAllInvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	users := repositories.New[models.User](openDB(t), repositories.WithCache(store, time.Minute))

	require.NoError(t, users.Create(ctx, ann()))
	all, err := users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	var cached []models.User
	require.True(t, store.Get(ctx, "offerdesk:users:all", &cached))

	bob := ann()
	bob.ID = 2
	require.NoError(t, users.Create(ctx, bob))
	assert.False(t, store.Get(ctx, "offerdesk:users:all", &cached))

	all, err = users.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// racingStore runs write once, just before the first Set lands.
type racingStore struct {
	*cache.Memory
	once  sync.Once
	write func()
}

func (s *racingStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.once.Do(s.write)
	return s.Memory.Set(ctx, key, value, ttl)
}

func TestCachedAllDropsListingReadBeforeWrite(t *testing.T) {
	ctx := context.Background()
	store := &racingStore{Memory: cache.NewMemory()}
	users := repositories.New[models.User](openDB(t), repositories.WithCache(store, time.Minute))
	require.NoError(t, users.Create(ctx, ann()))

	store.write = func() {
		updated := ann()
		updated.FirstName = "Updated"
		require.NoError(t, users.Replace(ctx, 1, updated))
	}

	// The first listing was read before the write and may say "Ann".
	_, err := users.All(ctx)
	require.NoError(t, err)

	var cached []models.User
	assert.False(t, store.Get(ctx, "offerdesk:users:all", &cached))

	all, err := users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Updated", all[0].FirstName)
}

func TestConcurrentCreatesSameID(t *testing.T) {
	ctx := context.Background()
	users := repositories.New[models.User](openDB(t))

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = users.Create(ctx, ann())
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, repositories.ErrDuplicate)
		}
	}
	assert.Equal(t, 1, ok)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
