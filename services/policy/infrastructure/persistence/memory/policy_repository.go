// Package memory is an in-process PolicyRepository for tests.
package memory

import (
	"context"
	"sync"
	"time"

	policydomain "github.com/ziplofy/storeconfig/services/policy/domain"
	"github.com/ziplofy/storeconfig/services/policy/domain/models"
)

type docKey struct {
	storeID string
	kind    string
}

// PolicyRepository keeps one document per (store, kind).
type PolicyRepository struct {
	mu   sync.Mutex
	docs map[docKey]models.Policy
	Err  error // when set, every call fails with it
}

// NewPolicyRepository returns an empty PolicyRepository.
func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{docs: make(map[docKey]models.Policy)}
}

func (r *PolicyRepository) Upsert(_ context.Context, kind models.Kind, p *models.Policy) (*models.Policy, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, false, r.Err
	}
	key := docKey{storeID: p.StoreID, kind: kind.Name}
	if existing, ok := r.docs[key]; ok {
		existing.Content = p.Content
		existing.UpdatedAt = p.UpdatedAt
		r.docs[key] = existing
		return &existing, false, nil
	}
	stored := *p
	stored.Kind = kind.Name
	r.docs[key] = stored
	return &stored, true, nil
}

func (r *PolicyRepository) GetByStore(_ context.Context, kind models.Kind, storeID string) (*models.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.docs[docKey{storeID: storeID, kind: kind.Name}]
	if !ok {
		return nil, policydomain.NotFound(kind)
	}
	return &p, nil
}

func (r *PolicyRepository) GetByID(_ context.Context, kind models.Kind, id string) (*models.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for key, p := range r.docs {
		if p.ID == id && key.kind == kind.Name {
			return &p, nil
		}
	}
	return nil, policydomain.NotFound(kind)
}

func (r *PolicyRepository) UpdateContent(_ context.Context, kind models.Kind, id, content string) (*models.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for key, p := range r.docs {
		if p.ID == id && key.kind == kind.Name {
			p.Content = content
			p.UpdatedAt = time.Now().UTC()
			r.docs[key] = p
			return &p, nil
		}
	}
	return nil, policydomain.NotFound(kind)
}
