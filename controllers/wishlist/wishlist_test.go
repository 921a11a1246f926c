package wishlistControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	wishlistControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/wishlist"
	"github.com/udaya-sanjeewa/charcoal-api/middleware"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/testutil"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.ResolveScope)
	api.GET("/wishlist", wishlistControllers.GetWishlist(db))
	api.POST("/wishlist", wishlistControllers.AddToWishlist(db))
	api.DELETE("/wishlist/:product_id", wishlistControllers.RemoveFromWishlist(db))
	api.DELETE("/wishlist", wishlistControllers.ClearWishlist(db))
	return r
}

func doJSON(r *gin.Engine, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToWishlistIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	product := testutil.SeedProduct(t, db, "portable-grill", 15900)
	r := newRouter(db)

	w := doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": product.ID})
	if w.Code != http.StatusCreated {
		t.Fatalf("first add: got %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": product.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("repeat add should be a 200 no-op, got %d body %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["message"] != "Already in wishlist" {
		t.Errorf("unexpected message %q", resp["message"])
	}

	var count int64
	db.Model(&models.WishlistItem{}).Where("session_id = ?", "anon_s1").Count(&count)
	if count != 1 {
		t.Errorf("expected one row, got %d", count)
	}
}

func TestAddToWishlistUnknownProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newRouter(db)

	w := doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": 9999})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing product, got %d", w.Code)
	}
}

func TestRemoveFromWishlistByProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	product := testutil.SeedProduct(t, db, "cast-iron-skillet", 6400)
	r := newRouter(db)

	doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": product.ID})
	doJSON(r, http.MethodPost, "/api/wishlist", "anon_s2", gin.H{"product_id": product.ID})

	path := "/api/wishlist/" + strconv.FormatUint(uint64(product.ID), 10)
	w := doJSON(r, http.MethodDelete, path, "anon_s1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove: got %d body %s", w.Code, w.Body.String())
	}

	var s1, s2 int64
	db.Model(&models.WishlistItem{}).Where("session_id = ?", "anon_s1").Count(&s1)
	db.Model(&models.WishlistItem{}).Where("session_id = ?", "anon_s2").Count(&s2)
	if s1 != 0 {
		t.Errorf("s1 row should be gone, have %d", s1)
	}
	if s2 != 1 {
		t.Errorf("removal must not cross scopes, s2 has %d", s2)
	}

	// removing again reports not found
	w = doJSON(r, http.MethodDelete, path, "anon_s1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeat remove, got %d", w.Code)
	}
}

func TestGetWishlistIncludesProducts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	product := testutil.SeedProduct(t, db, "chimney-starter", 2900)
	r := newRouter(db)

	doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": product.ID})

	w := doJSON(r, http.MethodGet, "/api/wishlist", "anon_s1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d", w.Code)
	}
	var resp struct {
		Items []wishlistControllers.WishlistLine `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(resp.Items))
	}
	if resp.Items[0].Product.Slug != "chimney-starter" {
		t.Errorf("expected product hydrated, got %+v", resp.Items[0].Product)
	}
}

func TestClearWishlistScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	a := testutil.SeedProduct(t, db, "tongs", 1100)
	b := testutil.SeedProduct(t, db, "apron", 2200)
	r := newRouter(db)

	doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": a.ID})
	doJSON(r, http.MethodPost, "/api/wishlist", "anon_s1", gin.H{"product_id": b.ID})
	doJSON(r, http.MethodPost, "/api/wishlist", "anon_s2", gin.H{"product_id": a.ID})

	w := doJSON(r, http.MethodDelete, "/api/wishlist", "anon_s1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: got %d", w.Code)
	}

	var s1, s2 int64
	db.Model(&models.WishlistItem{}).Where("session_id = ?", "anon_s1").Count(&s1)
	db.Model(&models.WishlistItem{}).Where("session_id = ?", "anon_s2").Count(&s2)
	if s1 != 0 || s2 != 1 {
		t.Errorf("expected s1=0 s2=1, got s1=%d s2=%d", s1, s2)
	}
}
