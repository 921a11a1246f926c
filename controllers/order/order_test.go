package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/order"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/testutil"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	user := r.Group("/api", func(c *gin.Context) { c.Set("user_id", userID) })
	user.GET("/orders", orderControllers.GetUserOrders(db))
	user.GET("/orders/:number", orderControllers.GetOrderByNumber(db))
	admin := r.Group("/api/admin")
	admin.GET("/orders", orderControllers.GetAllOrders(db))
	admin.PATCH("/orders/:id", orderControllers.UpdateOrder(db))
	admin.DELETE("/orders/:id", orderControllers.DeleteOrder(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedOrder(t *testing.T, db *gorm.DB, userID, number string) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:   number,
		UserID:        userID,
		Email:         "buyer@example.com",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalCents:    4500,
		Currency:      "USD",
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "oak-firewood-crate", UnitPriceCents: 4500, Quantity: 1},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order %s: %v", number, err)
	}
	return order
}

func TestGetUserOrdersScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedOrder(t, db, "uid_1", "ORD-AAA-0001")
	seedOrder(t, db, "uid_2", "ORD-BBB-0002")

	w := doJSON(newRouter(db, "uid_1"), http.MethodGet, "/api/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d", w.Code)
	}
	var orders []models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderNumber != "ORD-AAA-0001" {
		t.Errorf("expected only uid_1 orders, got %+v", orders)
	}
	if len(orders[0].Items) != 1 {
		t.Errorf("items should be preloaded, got %d", len(orders[0].Items))
	}
}

func TestGetOrderByNumberOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedOrder(t, db, "uid_1", "ORD-AAA-0001")

	w := doJSON(newRouter(db, "uid_1"), http.MethodGet, "/api/orders/ORD-AAA-0001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner lookup: got %d", w.Code)
	}

	// another user probing the same number sees nothing
	w = doJSON(newRouter(db, "uid_2"), http.MethodGet, "/api/orders/ORD-AAA-0001", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user lookup should be 404, got %d", w.Code)
	}
}

func TestUpdateOrderTransitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	order := seedOrder(t, db, "uid_1", "ORD-AAA-0001")
	r := newRouter(db, "uid_1")
	path := "/api/admin/orders/" + strconv.FormatUint(uint64(order.ID), 10)

	// skipping processing is rejected
	w := doJSON(r, http.MethodPatch, path, gin.H{"status": "shipped"})
	if w.Code != http.StatusConflict {
		t.Fatalf("pending -> shipped should be 409, got %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPatch, path, gin.H{"status": "processing"})
	if w.Code != http.StatusOK {
		t.Fatalf("pending -> processing: got %d body %s", w.Code, w.Body.String())
	}

	// unknown status value
	w = doJSON(r, http.MethodPatch, path, gin.H{"status": "misplaced"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status should be 400, got %d", w.Code)
	}

	// and the rejected moves left the row alone
	db.First(&order, order.ID)
	if order.Status != models.OrderStatusProcessing {
		t.Errorf("expected processing, got %s", order.Status)
	}
}

func TestUpdateOrderPaymentGraph(t *testing.T) {
	db := testutil.SetupTestDB(t)
	order := seedOrder(t, db, "uid_1", "ORD-AAA-0001")
	r := newRouter(db, "uid_1")
	path := "/api/admin/orders/" + strconv.FormatUint(uint64(order.ID), 10)

	w := doJSON(r, http.MethodPatch, path, gin.H{"payment_status": "paid"})
	if w.Code != http.StatusOK {
		t.Fatalf("pending -> paid: got %d body %s", w.Code, w.Body.String())
	}

	// payment can settle while the order itself is still pending
	db.First(&order, order.ID)
	if order.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("expected paid, got %s", order.PaymentStatus)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("order status should be untouched, got %s", order.Status)
	}

	w = doJSON(r, http.MethodPatch, path, gin.H{"payment_status": "pending"})
	if w.Code != http.StatusConflict {
		t.Errorf("paid -> pending should be 409, got %d", w.Code)
	}
}

func TestGetAllOrdersStatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedOrder(t, db, "uid_1", "ORD-AAA-0001")
	shipped := seedOrder(t, db, "uid_2", "ORD-BBB-0002")
	db.Model(&shipped).Update("status", models.OrderStatusShipped)

	r := newRouter(db, "uid_1")
	w := doJSON(r, http.MethodGet, "/api/admin/orders?status=shipped", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d", w.Code)
	}
	var orders []models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderNumber != "ORD-BBB-0002" {
		t.Errorf("expected only the shipped order, got %+v", orders)
	}
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	order := seedOrder(t, db, "uid_1", "ORD-AAA-0001")
	r := newRouter(db, "uid_1")

	path := "/api/admin/orders/" + strconv.FormatUint(uint64(order.ID), 10)
	w := doJSON(r, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Errorf("expected order and items gone, orders=%d items=%d", orders, items)
	}
}
