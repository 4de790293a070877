package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// ProductSequenceKey names the counter record that mints product ids.
const ProductSequenceKey = "products"

// ProductService owns the catalog create/update/list path. New ids come from
// the store's atomic sequence; name uniqueness is a check-then-act scan with
// a known race window between two concurrent creates of the same name.
type ProductService struct {
	log   *slog.Logger
	store ProductStore
}

func NewProductService(log *slog.Logger, store ProductStore) *ProductService {
	return &ProductService{log: log, store: store}
}

func (s *ProductService) Create(ctx context.Context, name, description string, price decimal.Decimal, quantity int64) (domain.Product, error) {
	unique, err := s.checkUnique(ctx, name, 0)
	if err != nil {
		return domain.Product{}, err
	}
	if !unique {
		s.log.Info("product name already exists", "name", name)
		return domain.Product{}, domain.ErrDuplicateName
	}

	id, err := s.store.NextSequence(ctx, ProductSequenceKey)
	if err != nil {
		return domain.Product{}, fmt.Errorf("issue product id: %w", err)
	}

	created, err := s.store.Create(ctx, domain.NewProduct(id, name, description, price, quantity))
	if err != nil {
		return domain.Product{}, err
	}
	s.log.Info("created product", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update rewrites an existing product. A product may keep its own name, so
// the uniqueness check excludes its id.
func (s *ProductService) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	unique, err := s.checkUnique(ctx, p.Name, p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if !unique {
		s.log.Info("product name already exists", "name", p.Name, "id", p.ID)
		return domain.Product{}, domain.ErrDuplicateName
	}
	return s.store.Update(ctx, domain.NewProduct(p.ID, p.Name, p.Description, p.Price, p.Quantity))
}

func (s *ProductService) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx)
}

// checkUnique reports whether no product other than excludeID carries the
// normalized name. excludeID 0 means no exclusion (ids start at 1).
func (s *ProductService) checkUnique(ctx context.Context, name string, excludeID uint64) (bool, error) {
	matches, err := s.store.FindByName(ctx, domain.NormalizeName(name))
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if m.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}
