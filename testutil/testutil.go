// Package testutil provides the in-memory database and identity-provider
// fakes the handler tests run against.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/udaya-sanjeewa/charcoal-api/auth"
	"github.com/udaya-sanjeewa/charcoal-api/models"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory SQLite database with the full
// schema migrated. TranslateError is on so duplicate-key handling behaves
// as it does against Postgres.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.BBQPackage{},
		&models.BBQBooking{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedProduct inserts a minimal active product and returns it.
func SeedProduct(t *testing.T, db *gorm.DB, slug string, priceCents int64) models.Product {
	t.Helper()

	product := models.Product{
		Slug:       slug,
		Name:       slug,
		Category:   models.CategoryCharcoal,
		PriceCents: priceCents,
		Currency:   "USD",
		IsActive:   true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product %s: %v", slug, err)
	}
	return product
}

// FakeVerifier maps bearer tokens to identities without talking to the
// real provider.
type FakeVerifier struct {
	Tokens map[string]*auth.Identity
}

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{Tokens: make(map[string]*auth.Identity)}
}

func (f *FakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Identity, error) {
	if id, ok := f.Tokens[idToken]; ok {
		return id, nil
	}
	return nil, errors.New("unknown token")
}

func (f *FakeVerifier) CreateUser(_ context.Context, email, _, name string) (*auth.Identity, error) {
	id := &auth.Identity{UID: "uid_" + uuid.NewString(), Email: email, Name: name}
	f.Tokens["token_"+email] = id
	return id, nil
}
