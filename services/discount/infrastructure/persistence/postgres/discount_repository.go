package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/events"
	discountdomain "github.com/ziplofy/storeconfig/services/discount/domain"
	domainevents "github.com/ziplofy/storeconfig/services/discount/domain/events"
	"github.com/ziplofy/storeconfig/services/discount/domain/models"
)

const discountColumns = `id, store_id, method, discount_code, title, value_type, percentage, fixed_amount,
	applies_to, minimum_purchase, eligibility, combinations, maximum_uses,
	start_at, end_at, created_at, updated_at`

// DiscountRepository implements repositories.DiscountRepository against the
// amount_off_product_discounts table. The nested blocks are JSONB columns.
type DiscountRepository struct {
	db  *database.Database
	pub events.TxPublisher
}

// NewDiscountRepository returns a DiscountRepository. pub may be nil.
func NewDiscountRepository(db *database.Database, pub events.TxPublisher) *DiscountRepository {
	return &DiscountRepository{db: db, pub: pub}
}

// Create inserts d and writes a discount.created event in the same
// transaction. The partial unique index on (store_id, lower(discount_code))
// rejects duplicate codes.
func (r *DiscountRepository) Create(ctx context.Context, d *models.Discount) error {
	blocks, err := marshalBlocks(d)
	if err != nil {
		return err
	}
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO amount_off_product_discounts (`+discountColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			d.ID, d.StoreID, string(d.Method), d.DiscountCode, d.Title, string(d.ValueType), d.Percentage, d.FixedAmount,
			blocks[0], blocks[1], blocks[2], blocks[3], blocks[4],
			d.ActiveDates.StartAt, d.ActiveDates.EndAt, d.CreatedAt, d.UpdatedAt,
		)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return discountdomain.ErrDiscountCodeExists
			}
			return fmt.Errorf("insert discount: %w", err)
		}
		return r.publish(ctx, tx, domainevents.TopicDiscountCreated, d)
	})
}

func (r *DiscountRepository) ListByStore(ctx context.Context, storeID string) ([]*models.Discount, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+discountColumns+` FROM amount_off_product_discounts
		WHERE store_id = $1 ORDER BY created_at DESC, id DESC`,
		storeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query discounts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := make([]*models.Discount, 0)
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discounts: %w", err)
	}
	return out, nil
}

func (r *DiscountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+discountColumns+` FROM amount_off_product_discounts WHERE id = $1`, id)
	d, err := scanDiscount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, discountdomain.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return d, nil
}

func (r *DiscountRepository) Delete(ctx context.Context, id string) (*models.Discount, error) {
	var deleted *models.Discount
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`DELETE FROM amount_off_product_discounts WHERE id = $1 RETURNING `+discountColumns, id)
		d, err := scanDiscount(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return discountdomain.ErrDiscountNotFound
			}
			return fmt.Errorf("delete discount: %w", err)
		}
		deleted = d
		return r.publish(ctx, tx, domainevents.TopicDiscountDeleted, d)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *DiscountRepository) publish(ctx context.Context, tx *sql.Tx, topic string, d *models.Discount) error {
	if r.pub == nil {
		return nil
	}
	err := r.pub.PublishTx(ctx, tx, topic, domainevents.DiscountEvent{
		DiscountID:   d.ID,
		StoreID:      d.StoreID,
		Method:       string(d.Method),
		DiscountCode: d.Code(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// marshalBlocks encodes the JSONB columns in column order.
func marshalBlocks(d *models.Discount) ([5][]byte, error) {
	var out [5][]byte
	for i, v := range []any{d.AppliesTo, d.MinimumPurchase, d.Eligibility, d.Combinations, d.MaximumUses} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("encode discount block: %w", err)
		}
		out[i] = b
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDiscount(s scanner) (*models.Discount, error) {
	var (
		d                                  models.Discount
		method, valueType                  string
		code, title                        sql.NullString
		percentage, fixedAmount            sql.NullFloat64
		appliesTo, minimum, elig, comb, mx []byte
		endAt                              sql.NullTime
	)
	if err := s.Scan(
		&d.ID, &d.StoreID, &method, &code, &title, &valueType, &percentage, &fixedAmount,
		&appliesTo, &minimum, &elig, &comb, &mx,
		&d.ActiveDates.StartAt, &endAt, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Method = models.Method(method)
	d.ValueType = models.ValueType(valueType)
	if code.Valid {
		d.DiscountCode = &code.String
	}
	if title.Valid {
		d.Title = &title.String
	}
	if percentage.Valid {
		d.Percentage = &percentage.Float64
	}
	if fixedAmount.Valid {
		d.FixedAmount = &fixedAmount.Float64
	}
	if endAt.Valid {
		d.ActiveDates.EndAt = &endAt.Time
	}

	for _, b := range []struct {
		raw  []byte
		dest any
	}{
		{appliesTo, &d.AppliesTo},
		{minimum, &d.MinimumPurchase},
		{elig, &d.Eligibility},
		{comb, &d.Combinations},
		{mx, &d.MaximumUses},
	} {
		if err := json.Unmarshal(b.raw, b.dest); err != nil {
			return nil, fmt.Errorf("decode discount block: %w", err)
		}
	}
	return &d, nil
}
