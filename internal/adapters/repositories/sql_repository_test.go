package repositories

import (
	"context"
	"database/sql"
	"delivery-sim/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(context.Background(), db, SQLite))
	return db
}

func testMatrix(t *testing.T) *domain.LocationMatrix {
	t.Helper()
	m, err := domain.NewLocationMatrix(
		[]string{"HUB", "Sugar House Park\n1330 2100 S", "C"},
		[][]float64{
			{0, 3.8, 6},
			{3.8, 0, 7.1},
			{6, 7.1, 0},
		},
	)
	require.NoError(t, err)
	return m
}

var seedDay = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testParcels() []*domain.Parcel {
	one := 1
	held := domain.NewParcel(2,
		domain.Address{Street: "1330 2100 S", City: "Salt Lake City", State: "UT", Zip: "84106"},
		"10:30 AM", "44", "Delayed on flight", &one)
	held.MarkDelayed(time.Date(2026, 1, 1, 9, 5, 0, 0, time.UTC))

	unresolved := domain.NewParcel(1,
		domain.Address{Street: "300 State St", City: "Salt Lake City", State: "UT", Zip: "84103"},
		"EOD", "2", "Wrong address listed", nil)

	return []*domain.Parcel{held, unresolved}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, InitSchema(context.Background(), db, SQLite))
}

func TestSeedAndLoad(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	matrix := testMatrix(t)

	require.NoError(t, Seed(ctx, db, SQLite, matrix, testParcels()))

	repo := NewSQLRepository(db, SQLite, seedDay)

	got, err := repo.LoadMatrix(ctx)
	require.NoError(t, err)
	assert.Equal(t, matrix.Labels(), got.Labels())
	for i := 0; i < matrix.Size(); i++ {
		for j := 0; j < matrix.Size(); j++ {
			assert.Equal(t, matrix.Distance(i, j), got.Distance(i, j), "[%d][%d]", i, j)
		}
	}

	parcels, err := repo.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 2)

	assert.Equal(t, 1, parcels[0].ID, "ordered by id")
	assert.Nil(t, parcels[0].Location)
	assert.Nil(t, parcels[0].AvailableFrom)
	assert.Equal(t, domain.StatusAtHub, parcels[0].Status)
	assert.Equal(t, "Wrong address listed", parcels[0].Notes)

	p2 := parcels[1]
	require.NotNil(t, p2.Location)
	assert.Equal(t, 1, *p2.Location)
	assert.Equal(t, "1330 2100 S, Salt Lake City, UT 84106", p2.Address.String())
	assert.Equal(t, "10:30 AM", p2.Deadline)
	require.NotNil(t, p2.AvailableFrom)
	assert.True(t, p2.AvailableFrom.Equal(time.Date(2026, 1, 1, 9, 5, 0, 0, time.UTC)))
	assert.Equal(t, domain.StatusDelayed, p2.Status)
}

func TestListParcelsPlacesHoldOnServiceDay(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, Seed(ctx, db, SQLite, testMatrix(t), testParcels()))

	var stored string
	require.NoError(t, db.QueryRowContext(ctx,
		"SELECT available_from FROM parcels WHERE parcel_id = 2").Scan(&stored))
	assert.Equal(t, "09:05:00", stored)

	denver := time.FixedZone("MST", -7*60*60)
	nextDay := time.Date(2026, 1, 2, 0, 0, 0, 0, denver)

	parcels, err := NewSQLRepository(db, SQLite, nextDay).ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 2)

	held := parcels[1]
	require.NotNil(t, held.AvailableFrom)
	assert.True(t, held.AvailableFrom.Equal(time.Date(2026, 1, 2, 9, 5, 0, 0, denver)), held.AvailableFrom)
	assert.True(t, held.HeldAt(time.Date(2026, 1, 2, 8, 0, 0, 0, denver)))
	assert.Equal(t, domain.StatusDelayed, held.Status)
}

func TestListParcelsRejectsBadHold(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, Seed(ctx, db, SQLite, testMatrix(t), testParcels()))

	_, err := db.ExecContext(ctx, "UPDATE parcels SET available_from = 'soon' WHERE parcel_id = 2")
	require.NoError(t, err)

	_, err = NewSQLRepository(db, SQLite, seedDay).ListParcels(ctx)
	assert.ErrorContains(t, err, "parcel_id=2 available_from")
}

func TestSeedReplacesMatrixAndUpsertsParcels(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, Seed(ctx, db, SQLite, testMatrix(t), testParcels()))

	small, err := domain.NewLocationMatrix([]string{"HUB", "A"}, [][]float64{{0, 2}, {2, 0}})
	require.NoError(t, err)
	zero := 0
	moved := domain.NewParcel(1, domain.Address{Street: "1 Main St"}, "EOD", "3", "", &zero)
	require.NoError(t, Seed(ctx, db, SQLite, small, []*domain.Parcel{moved}))

	repo := NewSQLRepository(db, SQLite, seedDay)
	m, err := repo.LoadMatrix(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())

	parcels, err := repo.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 2)
	assert.Equal(t, "1 Main St", parcels[0].Address.Street)
	require.NotNil(t, parcels[0].Location)
	assert.Equal(t, 0, *parcels[0].Location)
}

func TestSeedRejectsInvalidParcel(t *testing.T) {
	db := openTestDB(t)
	err := Seed(context.Background(), db, SQLite, testMatrix(t), []*domain.Parcel{nil})
	assert.ErrorContains(t, err, "invalid parcel at index 0")
}

func TestLoadMatrixEmpty(t *testing.T) {
	db := openTestDB(t)
	_, err := NewSQLRepository(db, SQLite, seedDay).LoadMatrix(context.Background())
	assert.ErrorContains(t, err, "no locations")
}

func TestDialect(t *testing.T) {
	d, err := DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)
	assert.Equal(t, "SELECT $1, $2", d.rebind("SELECT ?, ?"))

	d, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)
	assert.Equal(t, "SELECT ?, ?", d.rebind("SELECT ?, ?"))

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestMemoryParcelRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryParcelRepository(testParcels()...)

	first, err := repo.ListParcels(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, first[0].ID)
	first[0].Deliver(time.Now())

	second, err := repo.ListParcels(context.Background())
	require.NoError(t, err)
	assert.Nil(t, second[0].DeliveredAt)
}
