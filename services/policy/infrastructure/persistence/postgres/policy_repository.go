package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/events"
	policydomain "github.com/ziplofy/storeconfig/services/policy/domain"
	domainevents "github.com/ziplofy/storeconfig/services/policy/domain/events"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

const policyColumns = `id, store_id, kind, content, created_at, updated_at`

// PolicyRepository implements repositories.PolicyRepository against the
// store_policies table.
type PolicyRepository struct {
	db  *database.Database
	pub events.TxPublisher
}

// NewPolicyRepository returns a PolicyRepository. pub may be nil.
func NewPolicyRepository(db *database.Database, pub events.TxPublisher) *PolicyRepository {
	return &PolicyRepository{db: db, pub: pub}
}

// Upsert relies on the (store_id, kind) constraint so concurrent first writes
// cannot create two documents. xmax is zero only for a freshly inserted row.
func (r *PolicyRepository) Upsert(ctx context.Context, kind models.Kind, p *models.Policy) (*models.Policy, bool, error) {
	var (
		stored  *models.Policy
		created bool
	)
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO store_policies (id, store_id, kind, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			ON CONFLICT ON CONSTRAINT store_policies_store_kind_key
			DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
			RETURNING `+policyColumns+`, (xmax = 0) AS inserted`,
			p.ID, p.StoreID, kind.Name, p.Content, p.UpdatedAt,
		)
		var err error
		stored, created, err = scanUpserted(row)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", kind.Name, err)
		}
		return r.publish(ctx, tx, stored, created)
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *PolicyRepository) GetByStore(ctx context.Context, kind models.Kind, storeID string) (*models.Policy, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+policyColumns+` FROM store_policies WHERE store_id = $1 AND kind = $2`,
		storeID, kind.Name,
	)
	p, err := scanPolicy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, policydomain.NotFound(kind)
		}
		return nil, fmt.Errorf("get %s: %w", kind.Name, err)
	}
	return p, nil
}

// GetByID is scoped to kind like UpdateContent.
func (r *PolicyRepository) GetByID(ctx context.Context, kind models.Kind, id string) (*models.Policy, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+policyColumns+` FROM store_policies WHERE id = $1 AND kind = $2`,
		id, kind.Name,
	)
	p, err := scanPolicy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, policydomain.NotFound(kind)
		}
		return nil, fmt.Errorf("get %s: %w", kind.Name, err)
	}
	return p, nil
}

// UpdateContent is scoped to kind so an id of another kind reads as unknown.
func (r *PolicyRepository) UpdateContent(ctx context.Context, kind models.Kind, id, content string) (*models.Policy, error) {
	var updated *models.Policy
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE store_policies SET content = $1, updated_at = $2
			WHERE id = $3 AND kind = $4
			RETURNING `+policyColumns,
			content, time.Now().UTC(), id, kind.Name,
		)
		p, err := scanPolicy(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return policydomain.NotFound(kind)
			}
			return fmt.Errorf("update %s: %w", kind.Name, err)
		}
		updated = p
		return r.publish(ctx, tx, p, false)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PolicyRepository) publish(ctx context.Context, tx *sql.Tx, p *models.Policy, created bool) error {
	if r.pub == nil {
		return nil
	}
	err := r.pub.PublishTx(ctx, tx, domainevents.TopicPolicySaved, domainevents.PolicyEvent{
		Kind:       p.Kind,
		PolicyID:   p.ID,
		StoreID:    p.StoreID,
		Created:    created,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish %s saved: %w", p.Kind, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPolicy(s scanner) (*models.Policy, error) {
	var p models.Policy
	if err := s.Scan(&p.ID, &p.StoreID, &p.Kind, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanUpserted(s scanner) (*models.Policy, bool, error) {
	var (
		p        models.Policy
		inserted bool
	)
	if err := s.Scan(&p.ID, &p.StoreID, &p.Kind, &p.Content, &p.CreatedAt, &p.UpdatedAt, &inserted); err != nil {
		return nil, false, err
	}
	return &p, inserted, nil
}
