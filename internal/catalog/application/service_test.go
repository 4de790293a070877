package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(testLogger(), store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Shoes", "running shoes", dec("59.99"), 10); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, "shoes", "other shoes", dec("49.99"), 5)
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
	all, _ := store.List(ctx)
	if len(all) != 1 {
		t.Errorf("store holds %d products, want 1", len(all))
	}
}

func TestUpdateMayKeepOwnName(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(testLogger(), store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Shoes", "running shoes", dec("59.99"), 10)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	created.Description = "trail shoes"
	if _, err := svc.Update(ctx, created); err != nil {
		t.Fatalf("update with own name: %v", err)
	}

	other, err := svc.Create(ctx, "Boots", "hiking boots", dec("99.99"), 3)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other.Name = "SHOES"
	if _, err := svc.Update(ctx, other); !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
}

func TestCreateWithoutIDWhenSequenceFails(t *testing.T) {
	store := newFakeStore()
	store.seqErr = domain.ErrStoreUnavailable
	svc := NewProductService(testLogger(), store)

	_, err := svc.Create(context.Background(), "Shoes", "running shoes", dec("59.99"), 10)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
	all, _ := store.List(context.Background())
	if len(all) != 0 {
		t.Errorf("no product must be persisted without an id, got %d", len(all))
	}
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	store := newFakeStore()
	svc := NewProductService(testLogger(), store)
	const n = 50

	var wg sync.WaitGroup
	ids := make(chan uint64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.Create(context.Background(), name(i), "concurrent product", dec("1.5"), 1)
			if err != nil {
				t.Errorf("create %d: %v", i, err)
				return
			}
			ids <- p.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("issued %d distinct ids, want %d", len(seen), n)
	}
}

func name(i int) string {
	return "PRODUCT-" + string(rune('A'+i%26)) + string(rune('A'+i/26))
}
