// Package memory is an in-process TagRepository with the same uniqueness
// and ordering semantics as the Postgres one. Tests use it in place of a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	tagdomain "github.com/ziplofy/storeconfig/services/tag/domain"
	"github.com/ziplofy/storeconfig/services/tag/domain/models"
)

// TagRepository stores records per kind in memory.
type TagRepository struct {
	mu      sync.Mutex
	records map[string]map[string]models.Tag // kind -> id -> record
	Err     error                            // when set, every call fails with it
}

// NewTagRepository returns an empty TagRepository.
func NewTagRepository() *TagRepository {
	return &TagRepository{records: make(map[string]map[string]models.Tag)}
}

func (r *TagRepository) Create(_ context.Context, kind models.Kind, tag *models.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	table := r.table(kind)
	for _, existing := range table {
		if existing.StoreID == tag.StoreID && strings.EqualFold(existing.Name.String(), tag.Name.String()) {
			return tagdomain.AlreadyExists(kind)
		}
	}
	table[tag.ID] = *tag
	return nil
}

func (r *TagRepository) ListByStore(_ context.Context, kind models.Kind, storeID string) ([]*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*models.Tag, 0)
	for _, t := range r.table(kind) {
		if t.StoreID == storeID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if kind.Order == models.NameAscending {
			a, b := strings.ToLower(out[i].Name.String()), strings.ToLower(out[j].Name.String())
			if a != b {
				return a < b
			}
			return out[i].ID < out[j].ID
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *TagRepository) GetByID(_ context.Context, kind models.Kind, id string) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.table(kind)[id]
	if !ok {
		return nil, tagdomain.NotFound(kind)
	}
	return &t, nil
}

func (r *TagRepository) Delete(_ context.Context, kind models.Kind, id string) (*models.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	table := r.table(kind)
	t, ok := table[id]
	if !ok {
		return nil, tagdomain.NotFound(kind)
	}
	delete(table, id)
	return &t, nil
}

func (r *TagRepository) table(kind models.Kind) map[string]models.Tag {
	t, ok := r.records[kind.Name]
	if !ok {
		t = make(map[string]models.Tag)
		r.records[kind.Name] = t
	}
	return t
}
