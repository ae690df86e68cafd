package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

func TestCheckout(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db) // 10% tax
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	burger := entity.MenuItem{Name: "Burger", Price: 950, Available: true, RestaurantID: rest.ID}
	fries := entity.MenuItem{Name: "Fries", Price: 300, Available: true, RestaurantID: rest.ID}
	require.NoError(t, db.Create(&burger).Error)
	require.NoError(t, db.Create(&fries).Error)

	out, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID:  rest.ID,
		Type:          entity.OrderTypeDineIn,
		TableLabel:    "T4",
		PaymentMethod: "card",
		Items: []CheckoutItemIn{
			{MenuItemID: burger.ID, Qty: 2, Excluded: []string{"onions"}},
			{MenuItemID: fries.ID, Qty: 1},
		},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2200, out.Subtotal) // 2*950 + 300
	assert.EqualValues(t, 220, out.Tax)
	assert.EqualValues(t, 2420, out.Total)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, out.OrderNumber)

	var o entity.Order
	require.NoError(t, db.First(&o, out.ID).Error)
	assert.Equal(t, entity.StatusPending, o.Status)
	assert.Equal(t, entity.PaymentPending, o.PaymentStatus)
	assert.Equal(t, "T4", o.TableLabel)

	// lines carry name and price snapshots, not references
	var lines []entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", o.ID).Order("id").Find(&lines).Error)
	require.Len(t, lines, 2)
	assert.Equal(t, "Burger", lines[0].Name)
	assert.EqualValues(t, 950, lines[0].UnitPrice)
	assert.EqualValues(t, 1900, lines[0].Total)
	assert.JSONEq(t, `["onions"]`, string(lines[0].Excluded))

	var pay entity.Payment
	require.NoError(t, db.Where("order_id = ?", o.ID).First(&pay).Error)
	assert.EqualValues(t, 2420, pay.Amount)
	assert.Equal(t, entity.PaymentStatusPending, pay.Status)
}

func TestCheckoutRepeatedMenuItemLines(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	burger := entity.MenuItem{Name: "Burger", Price: 950, Available: true, RestaurantID: rest.ID}
	require.NoError(t, db.Create(&burger).Error)

	// one plain and one customized line for the same item
	out, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID: rest.ID,
		Type:         entity.OrderTypeDineIn,
		Items: []CheckoutItemIn{
			{MenuItemID: burger.ID, Qty: 1, Excluded: []string{"onions"}},
			{MenuItemID: burger.ID, Qty: 2},
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2850, out.Subtotal)

	var lines []entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", out.ID).Order("id").Find(&lines).Error)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Qty)
	assert.Equal(t, 2, lines[1].Qty)
}

func TestCheckoutRejectsUnavailableItems(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	soup := entity.MenuItem{Name: "Soup", Price: 500, Available: false, RestaurantID: rest.ID}
	require.NoError(t, db.Create(&soup).Error)

	_, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID: rest.ID,
		Type:         entity.OrderTypeDineIn,
		Items:        []CheckoutItemIn{{MenuItemID: soup.ID, Qty: 1}},
	})
	assert.Error(t, err)
}

func TestCheckoutRejectsForeignMenuItems(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	other := entity.Restaurant{Name: "Elsewhere", UserID: cust.ID, IsOpen: true}
	require.NoError(t, db.Create(&other).Error)
	foreign := entity.MenuItem{Name: "Pizza", Price: 1200, Available: true, RestaurantID: other.ID}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID: rest.ID,
		Type:         entity.OrderTypeDineIn,
		Items:        []CheckoutItemIn{{MenuItemID: foreign.ID, Qty: 1}},
	})
	assert.Error(t, err)
}

func TestCheckoutDeliveryNeedsAddress(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	burger := entity.MenuItem{Name: "Burger", Price: 950, Available: true, RestaurantID: rest.ID}
	require.NoError(t, db.Create(&burger).Error)

	_, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID: rest.ID,
		Type:         entity.OrderTypeDelivery,
		Items:        []CheckoutItemIn{{MenuItemID: burger.ID, Qty: 1}},
	})
	assert.Error(t, err)

	out, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID:    rest.ID,
		Type:            entity.OrderTypeDelivery,
		DeliveryAddress: "1 High Street",
		Items:           []CheckoutItemIn{{MenuItemID: burger.ID, Qty: 1}},
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	_, err := svc.Checkout(cust.ID, &CheckoutReq{
		RestaurantID: rest.ID,
		Type:         entity.OrderTypeDineIn,
	})
	assert.Error(t, err)
}

func TestOrderScoping(t *testing.T) {
	db := setupTestDB(t)
	owner, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)

	detail, err := svc.DetailForUser(cust.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, detail.Order.ID)
	assert.Len(t, detail.Items, 2)

	// another customer cannot read it
	stranger := entity.User{Email: "stranger@test.local", Role: entity.RoleCustomer}
	require.NoError(t, db.Create(&stranger).Error)
	_, err = svc.DetailForUser(stranger.ID, o.ID)
	assert.Error(t, err)

	// the owner sees it through the board, a non-owner does not
	_, err = svc.DetailForRestaurant(owner.ID, rest.ID, o.ID)
	require.NoError(t, err)
	_, err = svc.DetailForRestaurant(stranger.ID, rest.ID, o.ID)
	assert.Error(t, err)
}

func TestHistoryListsTerminalOrdersOnly(t *testing.T) {
	db := setupTestDB(t)
	owner, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	active := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	done := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	cancelled := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeTakeaway)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", done.ID).
		Update("status", entity.StatusCompleted).Error)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", cancelled.ID).
		Update("status", entity.StatusCancelled).Error)

	out, err := svc.HistoryForRestaurant(owner.ID, rest.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Total)
	for _, it := range out.Items {
		assert.NotEqual(t, active.ID, it.ID)
	}
}
