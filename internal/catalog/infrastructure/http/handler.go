package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/application"
	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

type Handler struct {
	log     *slog.Logger
	service *application.ProductService
	secret  []byte
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.ProductService, secret []byte) *Handler {
	return &Handler{
		log:     log,
		service: service,
		secret:  secret,
		tracer:  otel.Tracer("catalog-http"),
	}
}

type createProductReq struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int64           `json:"quantity"`
}

func (r createProductReq) validate() error {
	if len(r.Name) < 3 {
		return errors.New("Name is mandatory and must have a minimum length of 3")
	}
	if len(r.Description) < 3 {
		return errors.New("Description is mandatory and must have a minimum length of 3")
	}
	if r.Price == nil || r.Price.Sign() <= 0 {
		return errors.New("Price is mandatory and must be greater than 0")
	}
	if r.Quantity == nil || *r.Quantity <= 0 {
		return errors.New("Quantity is mandatory and must be an integer greater than 0")
	}
	return nil
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(VerifyToken(h.secret))
		r.With(RequireAdmin).Post("/", h.createProduct)
		r.Get("/", h.listProducts)
	})
	return r
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateProduct")
	defer span.End()

	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := req.validate(); err != nil {
		h.log.Info("invalid product request", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.Create(ctx, req.Name, req.Description, *req.Price, *req.Quantity)
	if errors.Is(err, domain.ErrDuplicateName) {
		writeError(w, http.StatusConflict, "Already exists a product with that name")
		return
	}
	if err != nil {
		h.log.Error("create product failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", r.URL.Path, created.ID))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]uint64{"id": created.ID})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	products, err := h.service.GetAll(ctx)
	if err != nil {
		h.log.Error("list products failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(products)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
