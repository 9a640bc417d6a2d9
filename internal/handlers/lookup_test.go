package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/fra-anto/wedding-rsvp-api/internal/guestid"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/fra-anto/wedding-rsvp-api/internal/tokencache"
	"github.com/rs/zerolog"
)

func TestHandleSearch(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLookupHandler(db, tokencache.NewMemoryCache(0), zerolog.Nop())

	leader := models.Guest{Name: "Marco", Surname: "Rossi", InvitationType: models.InvitationFull}
	db.Create(&leader)
	db.Create(&models.Guest{Name: "Anna", Surname: "Rossi", InvitationType: models.InvitationFull, FamilyID: &leader.ID})

	resp, err := handler.HandleSearch(context.Background(), &SearchGuestInput{Name: "marco", Surname: "ROSSI"})
	if err != nil {
		t.Fatalf("HandleSearch returned error: %v", err)
	}

	if resp.Body.Guest.Name != "Marco" {
		t.Errorf("expected guest Marco, got %q", resp.Body.Guest.Name)
	}
	if len(resp.Body.FamilyMembers) != 2 {
		t.Errorf("expected 2 family members, got %d", len(resp.Body.FamilyMembers))
	}
}

func TestHandleSearchRequiresInput(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLookupHandler(db, tokencache.NewMemoryCache(0), zerolog.Nop())

	if _, err := handler.HandleSearch(context.Background(), &SearchGuestInput{Name: "  "}); err == nil {
		t.Fatal("expected error for blank search, got nil")
	}
}

func TestHandleSearchNotFound(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLookupHandler(db, tokencache.NewMemoryCache(0), zerolog.Nop())

	if _, err := handler.HandleSearch(context.Background(), &SearchGuestInput{Surname: "Verdi"}); err == nil {
		t.Fatal("expected not found error, got nil")
	}
}

func TestHandleSurname(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLookupHandler(db, tokencache.NewMemoryCache(0), zerolog.Nop())

	db.Create(&models.Guest{Name: "Luca", Surname: "Bianchi", InvitationType: models.InvitationEvening})

	resp, err := handler.HandleSurname(context.Background(), &SurnameLookupInput{Surname: "bianchi"})
	if err != nil {
		t.Fatalf("HandleSurname returned error: %v", err)
	}
	if resp.Body.Guest.Surname != "Bianchi" {
		t.Errorf("expected surname Bianchi, got %q", resp.Body.Guest.Surname)
	}
}

func TestHandleConfirmCachesCode(t *testing.T) {
	db := setupTestDB(t)
	cache := tokencache.NewMemoryCache(0)
	handler := NewLookupHandler(db, cache, zerolog.Nop())

	leader := models.Guest{Name: "Marco", Surname: "Rossi", InvitationType: models.InvitationFull}
	db.Create(&leader)
	db.Create(&models.Guest{Name: "Anna", Surname: "Rossi", InvitationType: models.InvitationFull, FamilyID: &leader.ID})

	code := guestid.Encode(leader.ID)
	resp, err := handler.HandleConfirm(context.Background(), &ConfirmLookupInput{Code: code})
	if err != nil {
		t.Fatalf("HandleConfirm returned error: %v", err)
	}

	if resp.Body.Guest.ID != leader.ID {
		t.Errorf("expected guest %d, got %d", leader.ID, resp.Body.Guest.ID)
	}
	if len(resp.Body.FamilyMembers) != 2 {
		t.Errorf("expected 2 family members, got %d", len(resp.Body.FamilyMembers))
	}

	// A first visit without a cookie mints one.
	if !strings.HasPrefix(resp.SetCookie, visitorCookie+"=") {
		t.Fatalf("expected a %s cookie, got %q", visitorCookie, resp.SetCookie)
	}
	visitorID := strings.SplitN(strings.SplitN(resp.SetCookie, ";", 2)[0], "=", 2)[1]

	cached, err := cache.Read(context.Background(), visitorID)
	if err != nil {
		t.Fatalf("cache read failed: %v", err)
	}
	if cached != code {
		t.Errorf("expected cached code %q, got %q", code, cached)
	}
}

func TestHandleConfirmInvalidCode(t *testing.T) {
	db := setupTestDB(t)
	handler := NewLookupHandler(db, tokencache.NewMemoryCache(0), zerolog.Nop())

	if _, err := handler.HandleConfirm(context.Background(), &ConfirmLookupInput{Code: "not-a-token"}); err == nil {
		t.Fatal("expected not found error for invalid code, got nil")
	}
}

func TestHandleCachedCode(t *testing.T) {
	db := setupTestDB(t)
	cache := tokencache.NewMemoryCache(0)
	handler := NewLookupHandler(db, cache, zerolog.Nop())

	cache.Save(context.Background(), "visitor-1", "some-code")

	resp, err := handler.HandleCachedCode(context.Background(), &CachedCodeInput{Cookie: "visitor_id=visitor-1"})
	if err != nil {
		t.Fatalf("HandleCachedCode returned error: %v", err)
	}
	if resp.Body.Code != "some-code" {
		t.Errorf("expected cached code, got %q", resp.Body.Code)
	}

	// No cookie means no code, not an error.
	resp, err = handler.HandleCachedCode(context.Background(), &CachedCodeInput{})
	if err != nil {
		t.Fatalf("HandleCachedCode returned error: %v", err)
	}
	if resp.Body.Code != "" {
		t.Errorf("expected empty code without cookie, got %q", resp.Body.Code)
	}
}
