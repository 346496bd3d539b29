package order_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db/dbtest"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/menu"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/order"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/table"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	pool, err := dbtest.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to test database")
	}
	testDB = pool

	exitCode := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(exitCode)
}

// seed inserts customer 1, waiter 1, table 2 (capacity 4), dish 5 at 85.00 and
// dish 11 at 24.00.
func seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	statements := []string{
		`INSERT INTO customers (id, name, email) VALUES (1, 'Ana Souza', 'ana@example.com')`,
		`INSERT INTO waiters (id, name, cpf, salary) VALUES (1, 'Carlos Lima', '52998224725', 2500)`,
		`INSERT INTO dining_tables (id, number, capacity, location) VALUES (2, 12, 4, 'Terrace')`,
		`INSERT INTO dishes (id, name, price, category) VALUES (5, 'Picanha', 85.00, 'Grill')`,
		`INSERT INTO dishes (id, name, price, category) VALUES (11, 'Caipirinha', 24.00, 'Drinks')`,
	}
	for _, stmt := range statements {
		_, err := testDB.Exec(ctx, stmt)
		require.NoError(t, err, stmt)
	}
}

func newPostgresService() order.Service {
	return order.NewService(
		order.NewRepository(testDB),
		order.NewItemRepository(testDB),
		table.NewRepository(testDB),
		menu.NewRepository(testDB),
		db.NewTransactor(testDB),
	)
}

func TestPostgres_EndToEndScenario(t *testing.T) {
	dbtest.Require(t, testDB)
	t.Cleanup(func() {
		dbtest.Truncate(t, testDB)
	})
	seed(t)

	ctx := context.Background()
	svc := newPostgresService()

	detail, err := svc.CreateOrder(ctx, order.CreateOrderInput{CustomerID: 1, TableID: 2, WaiterID: 1, GuestCount: 2})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", detail.CustomerName)
	assert.Equal(t, "Carlos Lima", detail.WaiterName)
	assert.Equal(t, 12, detail.TableNumber)
	assertMoney(t, "0.00", detail.Total)

	detail, err = svc.AddItem(ctx, detail.ID, order.AddItemInput{DishID: 5, Quantity: 1})
	require.NoError(t, err)
	assertMoney(t, "85.00", detail.Total)
	firstItemID := detail.Items[0].ID

	detail, err = svc.AddItem(ctx, detail.ID, order.AddItemInput{DishID: 11, Quantity: 2})
	require.NoError(t, err)
	assertMoney(t, "133.00", detail.Total)

	require.NoError(t, svc.RemoveItem(ctx, detail.ID, firstItemID))

	detail, err = svc.CloseOrder(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusClosed, detail.Status)
	assertMoney(t, "48.00", detail.Total)

	_, err = svc.AddItem(ctx, detail.ID, order.AddItemInput{DishID: 5, Quantity: 1})
	require.ErrorIs(t, err, order.ErrOrderNotOpen)
}

func TestPostgres_CreateOrder_MissingReferences(t *testing.T) {
	dbtest.Require(t, testDB)
	t.Cleanup(func() {
		dbtest.Truncate(t, testDB)
	})
	seed(t)

	ctx := context.Background()
	svc := newPostgresService()

	_, err := svc.CreateOrder(ctx, order.CreateOrderInput{CustomerID: 99, TableID: 2, WaiterID: 1, GuestCount: 2})
	require.ErrorIs(t, err, order.ErrCustomerNotFound)

	_, err = svc.CreateOrder(ctx, order.CreateOrderInput{CustomerID: 1, TableID: 2, WaiterID: 99, GuestCount: 2})
	require.ErrorIs(t, err, order.ErrWaiterNotFound)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgres_TableOccupied(t *testing.T) {
	dbtest.Require(t, testDB)
	t.Cleanup(func() {
		dbtest.Truncate(t, testDB)
	})
	seed(t)

	ctx := context.Background()
	svc := newPostgresService()
	tables := table.NewRepository(testDB)

	detail, err := svc.CreateOrder(ctx, order.CreateOrderInput{CustomerID: 1, TableID: 2, WaiterID: 1, GuestCount: 2})
	require.NoError(t, err)

	tbl, err := tables.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, tbl.Occupied)

	_, err = svc.CloseOrder(ctx, detail.ID)
	require.NoError(t, err)

	tbl, err = tables.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, tbl.Occupied)
}

func TestPostgres_DeleteOrder(t *testing.T) {
	dbtest.Require(t, testDB)
	t.Cleanup(func() {
		dbtest.Truncate(t, testDB)
	})
	seed(t)

	ctx := context.Background()
	svc := newPostgresService()

	detail, err := svc.CreateOrder(ctx, order.CreateOrderInput{CustomerID: 1, TableID: 2, WaiterID: 1, GuestCount: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, detail.ID, order.AddItemInput{DishID: 5, Quantity: 1})
	require.NoError(t, err)

	_, err = testDB.Exec(ctx, `INSERT INTO reviews (customer_id, dish_id, order_id, rating) VALUES (1, 5, $1, 5)`, detail.ID)
	require.NoError(t, err)

	err = svc.DeleteOrder(ctx, detail.ID)
	require.ErrorIs(t, err, order.ErrOrderHasReviews)

	var items int
	require.NoError(t, testDB.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE order_id = $1`, detail.ID).Scan(&items))
	assert.Equal(t, 1, items, "items must survive the rolled back delete")

	_, err = testDB.Exec(ctx, `DELETE FROM reviews`)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, detail.ID))
	_, err = svc.GetOrderDetails(ctx, detail.ID)
	require.ErrorIs(t, err, order.ErrOrderNotFound)
}
