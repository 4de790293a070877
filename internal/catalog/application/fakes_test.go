package application

import (
	"context"
	"sync"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	products map[uint64]domain.Product
	counter  uint64

	updates []domain.Product

	getErr    error
	updateErr error
	seqErr    error
	createErr error
}

func newFakeStore(products ...domain.Product) *fakeStore {
	s := &fakeStore{products: make(map[uint64]domain.Product)}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (domain.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return domain.Product{}, false, s.getErr
	}
	p, ok := s.products[id]
	return p, ok, nil
}

func (s *fakeStore) FindByName(_ context.Context, name string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	var matches []domain.Product
	for _, p := range s.products {
		if p.Name == name {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *fakeStore) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return domain.Product{}, s.createErr
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) Update(_ context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return domain.Product{}, s.updateErr
	}
	s.products[p.ID] = p
	s.updates = append(s.updates, p)
	return p, nil
}

func (s *fakeStore) List(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeStore) NextSequence(_ context.Context, _ string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seqErr != nil {
		return 0, s.seqErr
	}
	s.counter++
	return s.counter, nil
}

func (s *fakeStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

func (s *fakeStore) quantity(id uint64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Quantity
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.OrderUpdateRequested
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event domain.OrderUpdateRequested) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []domain.OrderUpdateRequested {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.OrderUpdateRequested(nil), p.events...)
}
