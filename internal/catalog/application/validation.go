package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

// ValidationWorkflow evaluates a completed shopping cart against current
// stock and price, commits the stock decrements only when every line is
// valid, and publishes the resulting order-state transition.
type ValidationWorkflow struct {
	log       *slog.Logger
	store     ProductStore
	publisher EventPublisher
}

func NewValidationWorkflow(log *slog.Logger, store ProductStore, publisher EventPublisher) *ValidationWorkflow {
	return &ValidationWorkflow{log: log, store: store, publisher: publisher}
}

// Handle processes one validation request. Per-item findings (missing
// product, short stock, price drift) are data, collected into the outcome;
// only infrastructure failures return an error, in which case nothing has
// been written and no outcome has been published, so the message can be
// redelivered.
func (w *ValidationWorkflow) Handle(ctx context.Context, req domain.OrderValidationRequested) error {
	items := req.ShoppingCart.Items
	var (
		validItems       int
		pending          []domain.Product
		validationErrors []string
	)

	// Reads stay strictly sequential; nothing is persisted until every
	// item has been classified.
	for _, item := range items {
		product, found, err := w.store.GetByID(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("fetch product %d: %w", item.ProductID, err)
		}
		switch {
		case !found:
			msg := fmt.Sprintf("Product with id %d not found", item.ProductID)
			w.log.Error(msg, "order_id", req.ID)
			validationErrors = append(validationErrors, msg)
		case product.Quantity < item.Quantity:
			msg := fmt.Sprintf("Required %d units of product %d, but only %d available", item.Quantity, item.ProductID, product.Quantity)
			w.log.Error(msg, "order_id", req.ID)
			validationErrors = append(validationErrors, msg)
		case !product.Price.Equal(item.UnitPrice):
			msg := fmt.Sprintf("Product price is %s but %s was received", product.Price, item.UnitPrice)
			w.log.Error(msg, "order_id", req.ID)
			validationErrors = append(validationErrors, msg)
		default:
			validItems++
			product.Quantity -= item.Quantity
			pending = append(pending, product)
		}
	}

	outcome := domain.OrderUpdateRequested{ID: req.ID}
	if validItems == len(items) {
		w.log.Info("valid items for order", "order_id", req.ID)
		for _, product := range pending {
			if _, err := w.store.Update(ctx, product); err != nil {
				return fmt.Errorf("update product %d: %w", product.ID, err)
			}
			w.log.Info("updated product quantity", "id", product.ID, "quantity", product.Quantity)
		}
		outcome.State = req.SuccessState
	} else {
		w.log.Error("order must be rejected", "order_id", req.ID, "errors", len(validationErrors))
		outcome.State = req.FailureState
		outcome.Errors = validationErrors
	}

	if err := w.publisher.Publish(ctx, outcome); err != nil {
		return fmt.Errorf("publish outcome for order %d: %w", req.ID, err)
	}
	return nil
}
