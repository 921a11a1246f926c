package auth_test

import (
	"testing"
	"time"

	"github.com/udaya-sanjeewa/charcoal-api/auth"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"github.com/udaya-sanjeewa/charcoal-api/testutil"
)

func TestMergeSessionIntoUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	coal := testutil.SeedProduct(t, db, "lump-charcoal-5kg", 2500)
	oak := testutil.SeedProduct(t, db, "oak-firewood-crate", 8900)

	const sessionID = "anon_s1"
	const userID = "user_1"

	// anonymous scope: coal x2 in cart, both products wished
	seed := []interface{}{
		&models.CartItem{SessionID: sessionID, ProductID: coal.ID, Quantity: 2, AddedAt: time.Now()},
		&models.WishlistItem{SessionID: sessionID, ProductID: coal.ID, AddedAt: time.Now()},
		&models.WishlistItem{SessionID: sessionID, ProductID: oak.ID, AddedAt: time.Now()},
		// user scope already holds coal x3 and wishes coal
		&models.CartItem{UserID: userID, ProductID: coal.ID, Quantity: 3, AddedAt: time.Now()},
		&models.WishlistItem{UserID: userID, ProductID: coal.ID, AddedAt: time.Now()},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	merged, err := auth.MergeSessionIntoUser(db, sessionID, userID)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !merged {
		t.Fatal("expected merge to report work done")
	}

	// cart quantities for the same product are summed
	var cartItems []models.CartItem
	if err := db.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		t.Fatalf("fetch user cart: %v", err)
	}
	if len(cartItems) != 1 {
		t.Fatalf("expected one merged cart row, got %d", len(cartItems))
	}
	if cartItems[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", cartItems[0].Quantity)
	}

	// wishlist is a union
	var wishItems []models.WishlistItem
	if err := db.Where("user_id = ?", userID).Find(&wishItems).Error; err != nil {
		t.Fatalf("fetch user wishlist: %v", err)
	}
	if len(wishItems) != 2 {
		t.Fatalf("expected two wishlist rows, got %d", len(wishItems))
	}

	// anonymous rows are gone
	var sessionCart, sessionWish int64
	db.Model(&models.CartItem{}).Where("session_id = ?", sessionID).Count(&sessionCart)
	db.Model(&models.WishlistItem{}).Where("session_id = ?", sessionID).Count(&sessionWish)
	if sessionCart != 0 || sessionWish != 0 {
		t.Errorf("anonymous rows should be deleted, cart=%d wishlist=%d", sessionCart, sessionWish)
	}
}

func TestMergeEmptySession(t *testing.T) {
	db := testutil.SetupTestDB(t)

	merged, err := auth.MergeSessionIntoUser(db, "anon_nothing", "user_1")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged {
		t.Error("empty session should report nothing merged")
	}
}
