package application

import (
	"context"
	"log/slog"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

// RestorationWorkflow puts reserved stock back when an order is rolled back
// downstream. Unlike validation it is best-effort and silent: each item is
// restored independently, unresolvable items are skipped, and no outcome
// event is published.
type RestorationWorkflow struct {
	log   *slog.Logger
	store ProductStore
}

func NewRestorationWorkflow(log *slog.Logger, store ProductStore) *RestorationWorkflow {
	return &RestorationWorkflow{log: log, store: store}
}

func (w *RestorationWorkflow) Handle(ctx context.Context, req domain.StockRestoreRequested) {
	for _, item := range req.ShoppingCart.Items {
		product, found, err := w.store.GetByID(ctx, item.ProductID)
		if err != nil {
			w.log.Error("fetch product failed, skipping item", "id", item.ProductID, "err", err)
			continue
		}
		if !found {
			w.log.Error("product not found", "id", item.ProductID)
			continue
		}
		product.Quantity += item.Quantity
		if _, err := w.store.Update(ctx, product); err != nil {
			w.log.Error("restore stock failed", "id", product.ID, "err", err)
			continue
		}
		w.log.Info("updated product quantity", "id", product.ID, "quantity", product.Quantity)
	}
}
