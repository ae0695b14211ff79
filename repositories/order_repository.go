package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/softwrapstudio-web/Softwrap-Studio/config"
	"github.com/softwrapstudio-web/Softwrap-Studio/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateOrder inserts the order and its items in one transaction and fills
// in the generated ID and timestamps.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, status, payment_status, payment_method,
		                     subtotal, shipping_cost, cod_fee, total,
		                     full_name, email, phone, address, city, state, pincode, notes,
		                     razorpay_order_id, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		 RETURNING id`,
		order.OrderNumber, order.UserID, order.Status, order.PaymentStatus, order.PaymentMethod,
		order.Subtotal, order.ShippingCost, order.CODFee, order.Total,
		order.Address.FullName, order.Address.Email, order.Address.Phone, order.Address.Address,
		order.Address.City, order.Address.State, order.Address.Pincode, order.Address.Notes,
		order.RazorpayOrderID, now, now,
	).Scan(&order.ID)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, title, unit_price, quantity)
			 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
			item.OrderID, item.ProductID, item.Title, item.UnitPrice, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

func (r *OrderRepository) SetGatewayOrderID(ctx context.Context, orderID int, gatewayOrderID string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE orders SET razorpay_order_id = $1, updated_at = $2 WHERE id = $3`,
		gatewayOrderID, time.Now(), orderID)
	return err
}

// MarkPaymentCompleted flips a pending order to confirmed/completed with
// the gateway references attached.
func (r *OrderRepository) MarkPaymentCompleted(ctx context.Context, orderID int, paymentID, signature string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE orders SET status = $1, payment_status = $2,
		        razorpay_payment_id = $3, razorpay_signature = $4, updated_at = $5
		 WHERE id = $6`,
		models.OrderStatusConfirmed, models.PaymentStatusCompleted,
		paymentID, signature, time.Now(), orderID)
	return err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int, status string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), orderID)
	return err
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, orderID int) (*models.Order, error) {
	var o models.Order
	err := config.DB.QueryRow(ctx,
		`SELECT id, order_number, user_id, status, payment_status, payment_method,
		        subtotal, shipping_cost, cod_fee, total,
		        full_name, email, phone, address, city, state, pincode, notes,
		        COALESCE(razorpay_order_id, ''), COALESCE(razorpay_payment_id, ''),
		        created_at, updated_at
		 FROM orders WHERE id = $1`, orderID,
	).Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.Subtotal, &o.ShippingCost, &o.CODFee, &o.Total,
		&o.Address.FullName, &o.Address.Email, &o.Address.Phone, &o.Address.Address,
		&o.Address.City, &o.Address.State, &o.Address.Pincode, &o.Address.Notes,
		&o.RazorpayOrderID, &o.RazorpayPaymentID,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := config.DB.Query(ctx,
		`SELECT id, order_id, product_id, title, unit_price, quantity
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (r *OrderRepository) GetAllOrders(ctx context.Context, page, limit int, status string) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM orders`
	listQuery := `SELECT id, order_number, user_id, status, payment_status, payment_method,
	                     subtotal, shipping_cost, cod_fee, total, created_at, updated_at
	              FROM orders`

	countArgs := []interface{}{}
	listArgs := []interface{}{}
	if status != "" && status != "All" {
		countQuery += ` WHERE status = $1`
		listQuery += ` WHERE status = $1`
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status)
	}

	var total int
	if err := config.DB.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(listArgs)+1, len(listArgs)+2)
	listArgs = append(listArgs, limit, offset)

	rows, err := config.DB.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
			&o.Subtotal, &o.ShippingCost, &o.CODFee, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// RecordStockShortfall logs a decrement that failed after payment; the
// admin reconciliation listing works these off by hand.
func (r *OrderRepository) RecordStockShortfall(ctx context.Context, orderID, productID, quantity int, reason string) error {
	_, err := config.DB.Exec(ctx,
		`INSERT INTO stock_reconciliation (order_id, product_id, quantity, reason, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		orderID, productID, quantity, reason, time.Now())
	return err
}

func (r *OrderRepository) ListStockShortfalls(ctx context.Context) ([]models.StockShortfall, error) {
	rows, err := config.DB.Query(ctx,
		`SELECT id, order_id, product_id, quantity, reason, created_at
		 FROM stock_reconciliation ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.StockShortfall{}
	for rows.Next() {
		var e models.StockShortfall
		if err := rows.Scan(&e.ID, &e.OrderID, &e.ProductID, &e.Quantity, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
