package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/events"
	tagdomain "github.com/ziplofy/storeconfig/services/tag/domain"
	domainevents "github.com/ziplofy/storeconfig/services/tag/domain/events"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// TagRepository implements repositories.TagRepository against PostgreSQL.
// Every kind has its own table with identical columns; table names come from
// models.Kinds, never from request input.
type TagRepository struct {
	db  *database.Database
	pub events.TxPublisher
}

// NewTagRepository returns a TagRepository backed by the given pool. pub may
// be nil, in which case no outbox events are written.
func NewTagRepository(db *database.Database, pub events.TxPublisher) *TagRepository {
	return &TagRepository{db: db, pub: pub}
}

// Create inserts tag and publishes a TagEvent in the same transaction.
// The (store_id, lower(name)) unique index is the duplicate check.
func (r *TagRepository) Create(ctx context.Context, kind models.Kind, tag *models.Tag) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(
			`INSERT INTO %s (id, store_id, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			kind.Table,
		)
		if _, err := tx.ExecContext(ctx, query,
			tag.ID, tag.StoreID, tag.Name.String(), tag.CreatedAt, tag.UpdatedAt,
		); err != nil {
			if database.IsUniqueViolation(err) {
				return tagdomain.AlreadyExists(kind)
			}
			return fmt.Errorf("insert %s: %w", kind.Name, err)
		}

		if err := r.publish(ctx, tx, domainevents.TopicTagCreated, kind, tag); err != nil {
			return fmt.Errorf("publish %s created: %w", kind.Name, err)
		}
		return nil
	})
}

// ListByStore returns the store's records in the kind's list order.
func (r *TagRepository) ListByStore(ctx context.Context, kind models.Kind, storeID string) ([]*models.Tag, error) {
	query := fmt.Sprintf(
		`SELECT id, store_id, name, created_at, updated_at FROM %s WHERE store_id = $1 ORDER BY %s`,
		kind.Table, orderBy(kind.Order),
	)
	rows, err := r.db.DB().QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", kind.Table, err)
	}
	defer rows.Close() //nolint:errcheck

	tags := make([]*models.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind.Name, err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind.Table, err)
	}
	return tags, nil
}

// GetByID returns one record of kind.
func (r *TagRepository) GetByID(ctx context.Context, kind models.Kind, id string) (*models.Tag, error) {
	query := fmt.Sprintf(`SELECT id, store_id, name, created_at, updated_at FROM %s WHERE id = $1`, kind.Table)
	tag, err := scanTag(r.db.DB().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tagdomain.NotFound(kind)
		}
		return nil, fmt.Errorf("get %s: %w", kind.Name, err)
	}
	return tag, nil
}

// Delete removes the record and publishes a TagEvent in the same transaction.
func (r *TagRepository) Delete(ctx context.Context, kind models.Kind, id string) (*models.Tag, error) {
	var deleted *models.Tag
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(
			`DELETE FROM %s WHERE id = $1 RETURNING id, store_id, name, created_at, updated_at`,
			kind.Table,
		)
		tag, err := scanTag(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return tagdomain.NotFound(kind)
			}
			return fmt.Errorf("delete %s: %w", kind.Name, err)
		}
		if err := r.publish(ctx, tx, domainevents.TopicTagDeleted, kind, tag); err != nil {
			return fmt.Errorf("publish %s deleted: %w", kind.Name, err)
		}
		deleted = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *TagRepository) publish(ctx context.Context, tx *sql.Tx, topic string, kind models.Kind, tag *models.Tag) error {
	if r.pub == nil {
		return nil
	}
	return r.pub.PublishTx(ctx, tx, topic, domainevents.TagEvent{
		Kind:       kind.Name,
		TagID:      tag.ID,
		StoreID:    tag.StoreID,
		Name:       tag.Name.String(),
		OccurredAt: time.Now().UTC(),
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTag(s scanner) (*models.Tag, error) {
	var (
		t    models.Tag
		name string
	)
	if err := s.Scan(&t.ID, &t.StoreID, &name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Name = models.TagName(name)
	return &t, nil
}

func orderBy(o models.Order) string {
	if o == models.NameAscending {
		return "lower(name) ASC, name ASC, id ASC"
	}
	return "created_at DESC, id DESC"
}
