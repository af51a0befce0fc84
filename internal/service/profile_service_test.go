package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/domain"
)

// recordingStore is a test fake implementing port.UserStore.
type recordingStore struct {
	upsertAuth0ID string
	upsertEmail   string
	upsertName    string

	user *domain.User
	data *domain.UserData
	err  error
}

func (r *recordingStore) UpsertLogin(_ context.Context, auth0ID, email, name string) (*domain.User, error) {
	r.upsertAuth0ID = auth0ID
	r.upsertEmail = email
	r.upsertName = name
	return r.user, r.err
}

func (r *recordingStore) GetByAuthID(context.Context, string) (*domain.User, error) {
	return r.user, r.err
}

func (r *recordingStore) GetUserData(context.Context, string) (*domain.UserData, error) {
	return r.data, r.err
}

func TestTouchProfile_PassesClaimFields(t *testing.T) {
	store := &recordingStore{user: &domain.User{Auth0ID: "auth0|abc123", LastLogin: time.Now()}}
	svc := NewProfileService(store)

	claims := &domain.Claims{
		Subject: "auth0|abc123",
		Email:   "jane@example.com",
		Name:    "Jane Doe",
	}

	user, err := svc.TouchProfile(context.Background(), claims)
	if err != nil {
		t.Fatalf("TouchProfile: %v", err)
	}
	if user.Auth0ID != "auth0|abc123" {
		t.Errorf("Auth0ID = %q", user.Auth0ID)
	}

	if store.upsertAuth0ID != "auth0|abc123" || store.upsertEmail != "jane@example.com" || store.upsertName != "Jane Doe" {
		t.Errorf("upsert called with (%q, %q, %q)", store.upsertAuth0ID, store.upsertEmail, store.upsertName)
	}
}

func TestTouchProfile_WrapsStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := NewProfileService(&recordingStore{err: storeErr})

	_, err := svc.TouchProfile(context.Background(), &domain.Claims{Subject: "auth0|abc123"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("store error not wrapped: %v", err)
	}
}

func TestUserData_AbsentRowIsNotAnError(t *testing.T) {
	svc := NewProfileService(&recordingStore{})

	data, err := svc.UserData(context.Background(), "auth0|nobody")
	if err != nil {
		t.Fatalf("UserData: %v", err)
	}
	if data != nil {
		t.Errorf("data = %v, want nil", data)
	}
}

func TestUserData_ReturnsMergedRow(t *testing.T) {
	want := &domain.UserData{
		User:        domain.User{Auth0ID: "auth0|abc123"},
		Preferences: []domain.Preference{{Key: "theme", Value: "dark"}},
	}
	svc := NewProfileService(&recordingStore{data: want})

	data, err := svc.UserData(context.Background(), "auth0|abc123")
	if err != nil {
		t.Fatalf("UserData: %v", err)
	}
	if len(data.Preferences) != 1 || data.Preferences[0].Key != "theme" {
		t.Errorf("data = %+v", data)
	}
}
