package period_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

type memStore struct {
	mu      sync.Mutex
	seq     int
	periods map[string]*entity.Period
	globals map[string]*entity.GlobalParameter
	values  map[string]*entity.PeriodParameter
	updates int
}

func newMemStore() *memStore {
	return &memStore{
		periods: map[string]*entity.Period{},
		globals: map[string]*entity.GlobalParameter{},
		values:  map[string]*entity.PeriodParameter{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// ── PeriodRepository ──

type periodRepo struct{ s *memStore }

var _ repository.PeriodRepository = periodRepo{}

func (r periodRepo) Create(_ context.Context, p *entity.Period) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID("per")
	cp := *p
	r.s.periods[p.ID] = &cp
	return nil
}

func (r periodRepo) GetByID(_ context.Context, id string) (*entity.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.periods[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r periodRepo) GetActive(_ context.Context) (*entity.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.periods {
		if p.IsActive() {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r periodRepo) List(_ context.Context) ([]*entity.Period, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Period, 0, len(r.s.periods))
	for _, p := range r.s.periods {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r periodRepo) Activate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.periods[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.periods {
		if other.ID != id && other.IsActive() {
			return domain.ErrConflict
		}
	}
	p.Status = entity.StatusActive
	return nil
}

func (r periodRepo) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.periods[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.StatusInactive
	return nil
}

func (r periodRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.periods[id]; !ok {
		return domain.ErrNotFound
	}
	// ON DELETE CASCADE sobre parent_id.
	doomed := []string{id}
	for len(doomed) > 0 {
		cur := doomed[0]
		doomed = doomed[1:]
		delete(r.s.periods, cur)
		for childID, p := range r.s.periods {
			if p.ParentID != nil && *p.ParentID == cur {
				doomed = append(doomed, childID)
			}
		}
	}
	return nil
}

// ── ParameterRepository ──

type paramRepo struct{ s *memStore }

var _ repository.ParameterRepository = paramRepo{}

func (r paramRepo) CreateGlobal(_ context.Context, g *entity.GlobalParameter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g.ID = r.s.nextID("gp")
	cp := *g
	r.s.globals[g.ID] = &cp
	return nil
}

func (r paramRepo) ListGlobal(_ context.Context) ([]*entity.GlobalParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.GlobalParameter, 0, len(r.s.globals))
	for _, g := range r.s.globals {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r paramRepo) GetGlobal(_ context.Context, id string) (*entity.GlobalParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.globals[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r paramRepo) Attach(_ context.Context, pp *entity.PeriodParameter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.values {
		if v.PeriodID == pp.PeriodID && v.Parameter.ID == pp.Parameter.ID {
			return domain.ErrDuplicate
		}
	}
	pp.ID = r.s.nextID("pp")
	cp := *pp
	r.s.values[pp.ID] = &cp
	return nil
}

func (r paramRepo) GetPeriodParameter(_ context.Context, id string) (*entity.PeriodParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.values[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r paramRepo) ListByPeriod(_ context.Context, periodID string) ([]*entity.PeriodParameter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PeriodParameter
	for _, v := range r.s.values {
		if v.PeriodID == periodID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Parameter.Name < out[j].Parameter.Name })
	return out, nil
}

func (r paramRepo) UpdatePeriodParameter(_ context.Context, pp *entity.PeriodParameter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.values[pp.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *pp
	r.s.values[pp.ID] = &cp
	r.s.updates++
	return nil
}

func (r paramRepo) Detach(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.values[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.values, id)
	return nil
}

// ── TxRunner ──

// memTx no revierte; alcanza para verificar que el caso de uso pasa por la transacción.
type memTx struct {
	s     *memStore
	calls int
}

func (t *memTx) Run(_ context.Context, fn func(repository.PeriodRepository, repository.ParameterRepository) error) error {
	t.calls++
	return fn(periodRepo{t.s}, paramRepo{t.s})
}
