package auth

import (
	"context"
	"errors"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

// Identity is the subset of an identity-provider account the API cares about.
type Identity struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verifier abstracts the external identity provider so handlers and
// middleware can be tested against a fake.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	CreateUser(ctx context.Context, email, password, name string) (*Identity, error)
}

// FirebaseVerifier delegates token verification and account creation to
// Firebase Auth. Constructed once in main and injected; there is no
// package-level client.
type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsJSON string) (*FirebaseVerifier, error) {
	if projectID == "" || credentialsJSON == "" {
		return nil, errors.New("firebase project id and credentials are required")
	}

	opt := option.WithCredentialsJSON([]byte(credentialsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if token.Audience != v.projectID {
		return nil, errors.New("invalid token audience")
	}

	id := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		id.Picture = picture
	}
	return id, nil
}

func (v *FirebaseVerifier) CreateUser(ctx context.Context, email, password, name string) (*Identity, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name)

	record, err := v.client.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:   record.UID,
		Email: record.Email,
		Name:  record.DisplayName,
	}, nil
}
