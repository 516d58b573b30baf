package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/pkg/db"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  customer_ref TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'placed',
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  destination TEXT NOT NULL,
  payment_method_id TEXT NOT NULL,
  payment_method_name TEXT NOT NULL,
  notes TEXT,
  items_subtotal TEXT NOT NULL,
  delivery_fee_total TEXT NOT NULL,
  grand_total TEXT NOT NULL,
  message TEXT NOT NULL,
  message_encoded TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderMerchants := `
CREATE TABLE IF NOT EXISTS order_merchants (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  merchant_id TEXT NOT NULL,
  merchant_name TEXT NOT NULL,
  subtotal TEXT NOT NULL,
  distance_km REAL NOT NULL,
  delivery_fee TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	orderLineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  merchant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  customizations TEXT,
  line_total TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`

	uniqueCart := `CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_cart_id ON orders (cart_id);`

	for _, stmt := range []string{orders, orderMerchants, orderLineItems, uniqueCart} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func sampleOrder(customerRef string) *models.OrderRecord {
	merchantID := uuid.New()
	return &models.OrderRecord{
		ID:            uuid.New(),
		CartID:        uuid.New(),
		CustomerRef:   customerRef,
		Status:        "placed",
		CustomerName:  "Maria Santos",
		CustomerPhone: "+639171234567",
		Destination: types.Destination{
			PlaceID: "plc-1",
			Label:   "Maginhawa St, Quezon City",
			Lat:     14.6473,
			Lng:     121.0615,
		},
		PaymentMethodID:   uuid.New(),
		PaymentMethodName: "Cash on Delivery",
		ItemsSubtotal:     decimal.RequireFromString("150"),
		DeliveryFeeTotal:  decimal.RequireFromString("28"),
		GrandTotal:        decimal.RequireFromString("178"),
		Message:           "NEW ORDER",
		MessageEncoded:    "NEW+ORDER",
		Merchants: []models.OrderMerchant{
			{
				ID:           uuid.New(),
				MerchantID:   merchantID,
				MerchantName: "Aling Nena",
				Subtotal:     decimal.RequireFromString("150"),
				DistanceKm:   2,
				DeliveryFee:  decimal.RequireFromString("28"),
				Position:     0,
			},
		},
		LineItems: []models.OrderLineItem{
			{
				ID:         uuid.New(),
				MerchantID: merchantID,
				Name:       "Adobo",
				UnitPrice:  decimal.RequireFromString("75"),
				Quantity:   2,
				LineTotal:  decimal.RequireFromString("150"),
				Position:   0,
			},
		},
	}
}

func TestRepositoryCreateRequiresTransaction(t *testing.T) {
	repo := NewRepository(setupOrdersTestDB(t))
	err := repo.Create(context.Background(), nil, sampleOrder("cust-1"))
	require.Error(t, err)
}

func TestRepositoryCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	order := sampleOrder("cust-1")

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(context.Background(), tx, order)
	}))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.CustomerRef, found.CustomerRef)
	assert.Equal(t, "NEW ORDER", found.Message)
	assert.True(t, found.GrandTotal.Equal(decimal.RequireFromString("178")))
	require.Len(t, found.Merchants, 1)
	assert.Equal(t, "Aling Nena", found.Merchants[0].MerchantName)
	require.Len(t, found.LineItems, 1)
	assert.Equal(t, "Adobo", found.LineItems[0].Name)
	assert.Equal(t, "plc-1", found.Destination.PlaceID)
}

func TestRepositoryCreateRejectsSecondOrderForSameCart(t *testing.T) {
	dbConn := setupOrdersTestDB(t)
	repo := NewRepository(dbConn)

	first := sampleOrder("cust-dup")
	second := sampleOrder("cust-dup")
	second.CartID = first.CartID

	require.NoError(t, dbConn.Transaction(func(tx *gorm.DB) error {
		return repo.Create(context.Background(), tx, first)
	}))

	err := dbConn.Transaction(func(tx *gorm.DB) error {
		return repo.Create(context.Background(), tx, second)
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "ux_orders_cart_id"))
}

func TestRepositoryListByCustomerNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	first := sampleOrder("cust-7")
	second := sampleOrder("cust-7")
	other := sampleOrder("cust-8")

	for _, order := range []*models.OrderRecord{first, second, other} {
		require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
			return repo.Create(context.Background(), tx, order)
		}))
	}

	rows, err := repo.ListByCustomer(context.Background(), "cust-7")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "cust-7", row.CustomerRef)
	}
}
