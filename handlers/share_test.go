package handlers

import (
	"net/http"
	"strings"
	"testing"

	"albumapi/models"
)

func shareRequest(emails ...string) AlbumShareRequest {
	return AlbumShareRequest{Emails: emails}
}

func sharedEmails(t *testing.T, album models.Album) []string {
	t.Helper()
	reloaded, err := models.AlbumByID(album.ID)
	if err != nil {
		t.Fatal(err)
	}
	emails := []string{}
	for _, s := range reloaded.Shares {
		emails = append(emails, s.Email)
	}
	return emails
}

func TestShareRejectsEmptyEmailList(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "g-1", "owner@example.com")
	album := createAlbum(t, owner, "a")

	c, w := jsonContext(t, http.MethodPost, albumParams(album), shareRequest())
	AlbumShare(c, asCaller(owner))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestShareRejectsInvalidEmails(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "g-1", "owner@example.com")
	known := createUser(t, "g-2", "known@x.com")
	album := createAlbum(t, owner, "a")

	bad := []string{"not-an-email", "two words@x.com", "@x.com", "a@b"}
	for _, addr := range bad {
		c, w := jsonContext(t, http.MethodPost, albumParams(album), shareRequest(known.Email, addr))
		AlbumShare(c, asCaller(owner))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%q: status = %d, want 400", addr, w.Code)
		}
		if !strings.Contains(w.Body.String(), addr) && addr != "two words@x.com" {
			t.Errorf("%q: offending address not enumerated in %s", addr, w.Body.String())
		}
	}
	if got := sharedEmails(t, album); len(got) != 0 {
		t.Errorf("invalid requests changed the shared set: %v", got)
	}
}

// One unknown address rejects the whole call and leaves the set untouched.
func TestShareAllOrNothingOnUnknownUser(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "g-1", "owner@example.com")
	createUser(t, "g-2", "known@x.com")
	album := createAlbum(t, owner, "a")

	c, w := jsonContext(t, http.MethodPost, albumParams(album), shareRequest("known@x.com", "ghost@x.com"))
	AlbumShare(c, asCaller(owner))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ghost@x.com") {
		t.Errorf("missing address not enumerated in %s", w.Body.String())
	}
	if got := sharedEmails(t, album); len(got) != 0 {
		t.Errorf("rejected share changed the set: %v", got)
	}
}

func TestShareDeniedForNonOwner(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "g-1", "owner@example.com")
	other := createUser(t, "g-2", "other@x.com")
	album := createAlbum(t, owner, "a")

	c, w := jsonContext(t, http.MethodPost, albumParams(album), shareRequest(other.Email))
	AlbumShare(c, asCaller(other))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if got := sharedEmails(t, album); len(got) != 0 {
		t.Errorf("denied share changed the set: %v", got)
	}
}

func TestShareGrantsAndIsIdempotent(t *testing.T) {
	setupTestDB(t)
	owner := createUser(t, "g-1", "owner@example.com")
	friend := createUser(t, "g-2", "friend@x.com")
	album := createAlbum(t, owner, "a")

	for i := 0; i < 2; i++ {
		c, w := jsonContext(t, http.MethodPost, albumParams(album), shareRequest(friend.Email))
		AlbumShare(c, asCaller(owner))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d: status = %d, body %s", i, w.Code, w.Body.String())
		}
	}
	got := sharedEmails(t, album)
	if len(got) != 1 || got[0] != friend.Email {
		t.Errorf("shared set = %v, want exactly [%s]", got, friend.Email)
	}
}
