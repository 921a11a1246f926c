package addressControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	addressControllers "github.com/udaya-sanjeewa/charcoal-api/controllers/address"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/testutil"
	"gorm.io/gorm"
)

// newRouter binds the handlers behind a stub that pins the user identity;
// token verification is covered by the middleware tests.
func newRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) { c.Set("user_id", userID) })
	api.GET("/addresses", addressControllers.GetAddresses(db))
	api.POST("/addresses", addressControllers.CreateAddress(db))
	api.PUT("/addresses/:id", addressControllers.UpdateAddress(db))
	api.PUT("/addresses/:id/default", addressControllers.SetDefaultAddress(db))
	api.DELETE("/addresses/:id", addressControllers.DeleteAddress(db))
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

func addressForm(label string, isDefault bool) gin.H {
	return gin.H{
		"label":      label,
		"recipient":  "Sam Perera",
		"line1":      "12 Kiln Road",
		"city":       "Portland",
		"is_default": isDefault,
	}
}

func defaultCount(db *gorm.DB, userID string) int64 {
	var n int64
	db.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Count(&n)
	return n
}

func TestCreateAddressDefaultDisplacesPrevious(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newRouter(db, "uid_1")

	w := doJSON(r, http.MethodPost, "/api/addresses", addressForm("home", true))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodPost, "/api/addresses", addressForm("work", true))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d body %s", w.Code, w.Body.String())
	}

	if n := defaultCount(db, "uid_1"); n != 1 {
		t.Errorf("expected exactly one default, got %d", n)
	}
	var def models.Address
	db.Where("user_id = ? AND is_default = ?", "uid_1", true).First(&def)
	if def.Label != "work" {
		t.Errorf("latest default should win, got %s", def.Label)
	}
}

func TestSetDefaultAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newRouter(db, "uid_1")

	doJSON(r, http.MethodPost, "/api/addresses", addressForm("home", true))
	doJSON(r, http.MethodPost, "/api/addresses", addressForm("work", false))

	var work models.Address
	if err := db.Where("label = ?", "work").First(&work).Error; err != nil {
		t.Fatalf("fetch: %v", err)
	}

	path := "/api/addresses/" + strconv.FormatUint(uint64(work.ID), 10) + "/default"
	w := doJSON(r, http.MethodPut, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("set default: got %d body %s", w.Code, w.Body.String())
	}

	if n := defaultCount(db, "uid_1"); n != 1 {
		t.Errorf("expected exactly one default, got %d", n)
	}
	var def models.Address
	db.Where("user_id = ? AND is_default = ?", "uid_1", true).First(&def)
	if def.ID != work.ID {
		t.Errorf("expected %d to be default, got %d", work.ID, def.ID)
	}
}

func TestAddressesScopedToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)

	doJSON(newRouter(db, "uid_1"), http.MethodPost, "/api/addresses", addressForm("home", true))

	other := newRouter(db, "uid_2")
	w := doJSON(other, http.MethodGet, "/api/addresses", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d", w.Code)
	}
	var addresses []models.Address
	if err := json.Unmarshal(w.Body.Bytes(), &addresses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(addresses) != 0 {
		t.Errorf("uid_1 addresses leaked to uid_2: %+v", addresses)
	}

	// nor can another user mutate them
	var addr models.Address
	db.Where("user_id = ?", "uid_1").First(&addr)
	path := "/api/addresses/" + strconv.FormatUint(uint64(addr.ID), 10)
	w = doJSON(other, http.MethodDelete, path, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-user delete should be 404, got %d", w.Code)
	}
}

func TestUpdateAddressKeepsSingleDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newRouter(db, "uid_1")

	doJSON(r, http.MethodPost, "/api/addresses", addressForm("home", true))
	doJSON(r, http.MethodPost, "/api/addresses", addressForm("work", false))

	var work models.Address
	db.Where("label = ?", "work").First(&work)

	path := "/api/addresses/" + strconv.FormatUint(uint64(work.ID), 10)
	w := doJSON(r, http.MethodPut, path, addressForm("work", true))
	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d body %s", w.Code, w.Body.String())
	}

	if n := defaultCount(db, "uid_1"); n != 1 {
		t.Errorf("expected exactly one default, got %d", n)
	}
}

func TestDeleteAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newRouter(db, "uid_1")

	doJSON(r, http.MethodPost, "/api/addresses", addressForm("home", false))
	var addr models.Address
	db.Where("user_id = ?", "uid_1").First(&addr)

	path := "/api/addresses/" + strconv.FormatUint(uint64(addr.ID), 10)
	w := doJSON(r, http.MethodDelete, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got %d", w.Code)
	}
	w = doJSON(r, http.MethodDelete, path, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat delete should be 404, got %d", w.Code)
	}
}
