package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/eatsprint/internal/domain/errors"
	"github.com/polkiloo/eatsprint/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, items, amount::text, address, payment_method, payment, status, created_at, updated_at`

type itemDocument struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type addressDocument struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func encodeItems(items []model.LineItem) ([]byte, error) {
	docs := make([]itemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, itemDocument{Name: item.Name, Price: int64(item.UnitPrice), Quantity: item.Quantity})
	}
	return json.Marshal(docs)
}

func decodeItems(raw []byte) ([]model.LineItem, error) {
	var docs []itemDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	items := make([]model.LineItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, model.LineItem{Name: doc.Name, UnitPrice: model.MinorAmount(doc.Price), Quantity: doc.Quantity})
	}
	return items, nil
}

func encodeAddress(a model.Address) ([]byte, error) {
	return json.Marshal(addressDocument(a))
}

func decodeAddress(raw []byte) (model.Address, error) {
	var doc addressDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Address{}, fmt.Errorf("decode address: %w", err)
	}
	return model.Address(doc), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o       model.Order
		items   []byte
		address []byte
		amount  string
	)
	if err := row.Scan(&o.ID, &o.UserID, &items, &amount, &address, &o.PaymentMethod, &o.Payment, &o.Status, &o.Date, &o.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if o.Items, err = decodeItems(items); err != nil {
		return nil, err
	}
	if o.Address, err = decodeAddress(address); err != nil {
		return nil, err
	}
	if o.Amount, err = model.ParseMajorAmount(amount); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := encodeItems(order.Items)
	if err != nil {
		return err
	}
	address, err := encodeAddress(order.Address)
	if err != nil {
		return err
	}

	const query = `INSERT INTO orders (id, user_id, items, amount, address, payment_method, payment, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $9)`
	_, err = r.storage.pool.Exec(ctx, query,
		order.ID, order.UserID, items, order.Amount.String(), address,
		order.PaymentMethod, order.Payment, order.Status, order.Date,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	order.UpdatedAt = order.Date
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id string) (*model.Order, bool, error) {
	const query = `UPDATE orders SET payment=TRUE,
                       status=CASE WHEN status='' THEN $2 ELSE status END,
                       updated_at=NOW()
                   WHERE id=$1 AND payment_method='online' AND payment=FALSE AND status<>$3
                   RETURNING ` + orderColumns
	return r.conditionalUpdate(ctx, query, id, id, model.OrderStatusConfirmed, model.OrderStatusCancelled)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, model.OrderStatus, error) {
	var (
		updated  *model.Order
		previous model.OrderStatus
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&previous); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const update = `UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + orderColumns
		order, err := scanOrder(tx.QueryRow(ctx, update, id, status))
		if err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return updated, previous, nil
}

func (r *orderRepository) CompareAndSetStatus(ctx context.Context, id string, expected, status model.OrderStatus) (*model.Order, bool, error) {
	const query = `UPDATE orders SET status=$3, updated_at=NOW()
                   WHERE id=$1 AND status=$2
                   RETURNING ` + orderColumns
	return r.conditionalUpdate(ctx, query, id, id, expected, status)
}

// conditionalUpdate runs a guarded UPDATE ... RETURNING. When the guard does not
// match, the current row is returned with changed=false.
func (r *orderRepository) conditionalUpdate(ctx context.Context, query, id string, args ...any) (*model.Order, bool, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
	if err == nil {
		return order, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *orderRepository) DeleteUnpaid(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM orders WHERE id=$1 AND payment_method='online' AND payment=FALSE`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM orders WHERE payment_method='online' AND payment=FALSE AND created_at < $1`
	tag, err := r.storage.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
