package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tiendago/orders/internal/adapter/storage"
	"github.com/tiendago/orders/internal/core/domain"
)

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

var orderColumns = []string{
	"id", "shopper_id", "status", "idempotency_key", "total_amount",
	"items", "payment_method", "payment_reference", "payment_audit",
	"cancel_reason", "shipping_info", "version", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order                  domain.Order
		idKey, payRef, cancel  *string
		items, audit, shipping []byte
	)

	err := row.Scan(
		&order.ID,
		&order.ShopperID,
		&order.Status,
		&idKey,
		&order.TotalAmount,
		&items,
		&order.PaymentMethod,
		&payRef,
		&audit,
		&cancel,
		&shipping,
		&order.Version,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if idKey != nil {
		order.IdempotencyKey = *idKey
	}
	if payRef != nil {
		order.PaymentReference = *payRef
	}
	if cancel != nil {
		order.CancelReason = *cancel
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decoding order items: %w", err)
	}
	if err := json.Unmarshal(audit, &order.PaymentAudit); err != nil {
		return nil, fmt.Errorf("decoding payment audit: %w", err)
	}
	if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
		return nil, fmt.Errorf("decoding shipping info: %w", err)
	}

	return &order, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func encodeOrderFields(order *domain.Order) (items, audit, shipping []byte, err error) {
	// json.Marshal turns nil slices into "null", which a jsonb column would
	// happily keep; store empty arrays instead.
	items = []byte(`[]`)
	if order.Items != nil {
		items, err = json.Marshal(order.Items)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encoding order items: %w", err)
		}
	}
	audit = []byte(`[]`)
	if order.PaymentAudit != nil {
		audit, err = json.Marshal(order.PaymentAudit)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("encoding payment audit: %w", err)
		}
	}
	shipping, err = json.Marshal(order.Shipping)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding shipping info: %w", err)
	}
	return items, audit, shipping, nil
}

func (or *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, audit, shipping, err := encodeOrderFields(order)
	if err != nil {
		return nil, err
	}

	order.Version = 1
	order.UpdatedAt = order.CreatedAt

	statement := or.db.QueryBuilder.Insert("orders").
		Columns(orderColumns...).
		Values(order.ID, order.ShopperID, order.Status, nilIfEmpty(order.IdempotencyKey),
			order.TotalAmount, items, order.PaymentMethod, nilIfEmpty(order.PaymentReference),
			audit, nilIfEmpty(order.CancelReason), shipping, order.Version,
			order.CreatedAt, order.UpdatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = or.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return order, nil
}

func (or *Repository) ReadOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) ReadOrderByIdempotencyKey(ctx context.Context, shopperID uint64, key string) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"shopper_id": shopperID, "idempotency_key": key}).
		Where(sq.NotEq{"status": domain.OrderStatusCancelled}).
		OrderBy("created_at DESC").
		Limit(1)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(or.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return order, nil
}

func (or *Repository) FindRecentPending(ctx context.Context, shopperID uint64, total decimal.Decimal,
	productRefs []string, since time.Time) (*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{
			"shopper_id":   shopperID,
			"status":       []domain.OrderStatus{domain.OrderStatusPending, domain.OrderStatusPendingWhatsApp},
			"total_amount": total,
		}).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wanted := make(map[string]bool, len(productRefs))
	for _, ref := range productRefs {
		wanted[ref] = true
	}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		for _, ref := range order.ProductRefs() {
			if wanted[ref] {
				return order, nil
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return nil, domain.ErrDataNotFound
}

// UpdateOrder is a version-guarded full replace. Callers always hold a
// freshly read order, so zero updated rows means a concurrent writer bumped
// the version in between.
func (or *Repository) UpdateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, audit, shipping, err := encodeOrderFields(order)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	statement := or.db.QueryBuilder.Update("orders").
		Set("status", order.Status).
		Set("idempotency_key", nilIfEmpty(order.IdempotencyKey)).
		Set("total_amount", order.TotalAmount).
		Set("items", items).
		Set("payment_method", order.PaymentMethod).
		Set("payment_reference", nilIfEmpty(order.PaymentReference)).
		Set("payment_audit", audit).
		Set("cancel_reason", nilIfEmpty(order.CancelReason)).
		Set("shipping_info", shipping).
		Set("version", order.Version+1).
		Set("updated_at", now).
		Where(sq.Eq{"id": order.ID, "version": order.Version}).
		Suffix("RETURNING version")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = or.db.QueryRow(ctx, sql, args...).Scan(&order.Version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrStaleOrderVersion
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	order.UpdatedAt = now

	return order, nil
}

func (or *Repository) CancelStaleOrders(ctx context.Context, shopperID uint64,
	statuses []domain.OrderStatus, olderThan time.Time, reason string) (int64, error) {
	statement := or.db.QueryBuilder.Update("orders").
		Set("status", domain.OrderStatusCancelled).
		Set("cancel_reason", reason).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"shopper_id": shopperID, "status": statuses}).
		Where(sq.Lt{"created_at": olderThan})

	sql, args, err := statement.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := or.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (or *Repository) ListOrdersByShopper(ctx context.Context, shopperID uint64) ([]*domain.Order, error) {
	statement := or.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"shopper_id": shopperID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (or *Repository) CreateShopper(ctx context.Context, shopper *domain.Shopper) (*domain.Shopper, error) {
	shopper.CreatedAt = time.Now()

	statement := or.db.QueryBuilder.
		Insert("shoppers").
		Columns("email", "password", "created_at").
		Values(shopper.Email, shopper.Password, shopper.CreatedAt).
		Suffix("RETURNING id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = or.db.QueryRow(ctx, sql, args...).Scan(&shopper.ID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return shopper, nil
}

func (or *Repository) GetShopperByEmail(ctx context.Context, email string) (*domain.Shopper, error) {
	statement := or.db.QueryBuilder.
		Select("id", "email", "password", "created_at").
		From("shoppers").
		Where(sq.Eq{"email": email})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	shopper := domain.Shopper{}

	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&shopper.ID,
		&shopper.Email,
		&shopper.Password,
		&shopper.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &shopper, nil
}

func (or *Repository) ReadShopper(ctx context.Context, shopperID uint64) (*domain.Shopper, error) {
	statement := or.db.QueryBuilder.
		Select("id", "email", "password", "created_at").
		From("shoppers").
		Where(sq.Eq{"id": shopperID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	shopper := domain.Shopper{}

	err = or.db.QueryRow(ctx, sql, args...).Scan(
		&shopper.ID,
		&shopper.Email,
		&shopper.Password,
		&shopper.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &shopper, nil
}
