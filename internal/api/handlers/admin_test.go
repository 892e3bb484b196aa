package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/manacart/manacart/internal/checkout"
	"github.com/manacart/manacart/internal/storage/models"
)

type adminFixture struct {
	router    *chi.Mux
	orders    *memOrderRepo
	discounts *memDiscountRepo
	svc       *checkout.Service
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	orders := newMemOrderRepo()
	discounts := &memDiscountRepo{codes: make(map[string]*models.DiscountCode)}
	svc := checkout.NewService(orders, discounts, nil, nil, nil)

	h := NewAdminHandler(svc, discounts, nil)
	router := chi.NewRouter()
	router.Get("/admin/orders", h.ListOrders)
	router.Get("/admin/orders/{orderID}", h.GetOrder)
	router.Post("/admin/orders/{orderID}/fulfill", h.FulfillOrder)
	router.Get("/admin/discounts", h.ListDiscounts)
	router.Post("/admin/discounts", h.CreateDiscount)
	router.Delete("/admin/discounts/{code}", h.DeactivateDiscount)

	return &adminFixture{router: router, orders: orders, discounts: discounts, svc: svc}
}

func TestFulfillOrder(t *testing.T) {
	f := newAdminFixture(t)
	f.orders.orders["o-1"] = &models.Order{ID: "o-1", UserID: "user-1", Status: models.OrderStatusPaid}

	rec := doJSON(t, f.router, http.MethodPost, "/admin/orders/o-1/fulfill", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fulfill: status %d: %s", rec.Code, rec.Body.String())
	}
	if f.orders.orders["o-1"].Status != models.OrderStatusShipped {
		t.Errorf("status = %q", f.orders.orders["o-1"].Status)
	}
}

func TestFulfillUnpaidOrderIsConflict(t *testing.T) {
	f := newAdminFixture(t)
	f.orders.orders["o-1"] = &models.Order{ID: "o-1", UserID: "user-1", Status: models.OrderStatusPending}

	rec := doJSON(t, f.router, http.MethodPost, "/admin/orders/o-1/fulfill", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	f := newAdminFixture(t)
	f.orders.orders["o-1"] = &models.Order{ID: "o-1", Status: models.OrderStatusPaid}
	f.orders.orders["o-2"] = &models.Order{ID: "o-2", Status: models.OrderStatusPending}

	rec := doJSON(t, f.router, http.MethodGet, "/admin/orders?status=paid", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var wrapper struct {
		Data []*models.Order `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &wrapper); err != nil {
		t.Fatal(err)
	}
	if len(wrapper.Data) != 1 || wrapper.Data[0].ID != "o-1" {
		t.Errorf("orders = %+v", wrapper.Data)
	}

	rec = doJSON(t, f.router, http.MethodGet, "/admin/orders?status=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bogus filter", rec.Code)
	}
}

func TestCreateAndDeactivateDiscount(t *testing.T) {
	f := newAdminFixture(t)

	rec := doJSON(t, f.router, http.MethodPost, "/admin/discounts",
		CreateDiscountRequest{Code: "launch10", Percent: 10})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create discount: status %d: %s", rec.Code, rec.Body.String())
	}
	if f.discounts.codes["LAUNCH10"] == nil {
		t.Fatal("code not stored uppercase")
	}

	// Duplicate codes are rejected.
	rec = doJSON(t, f.router, http.MethodPost, "/admin/discounts",
		CreateDiscountRequest{Code: "LAUNCH10", Percent: 20})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate: status %d, want 409", rec.Code)
	}

	rec = doJSON(t, f.router, http.MethodDelete, "/admin/discounts/launch10", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("deactivate: status %d", rec.Code)
	}
	if f.discounts.codes["LAUNCH10"].Active {
		t.Error("code still active")
	}
}

func TestCreateDiscountValidation(t *testing.T) {
	f := newAdminFixture(t)

	rec := doJSON(t, f.router, http.MethodPost, "/admin/discounts",
		CreateDiscountRequest{Code: "", Percent: 10})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty code: status %d", rec.Code)
	}

	rec = doJSON(t, f.router, http.MethodPost, "/admin/discounts",
		CreateDiscountRequest{Code: "BAD", Percent: 150})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("percent 150: status %d", rec.Code)
	}
}
