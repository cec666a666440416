package web

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const flashName = "stadiumbook_flash"

type Flash struct {
	Message string
	Error   bool
}

// FlashStore carries one message across a post/redirect/get round trip.
type FlashStore struct{ sc *securecookie.SecureCookie }

func NewFlashStore(hashKey, blockKey []byte) *FlashStore {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	if len(blockKey) == 0 {
		blockKey = securecookie.GenerateRandomKey(32)
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(300)
	return &FlashStore{sc: sc}
}

func (s *FlashStore) Set(w http.ResponseWriter, f Flash) error {
	encoded, err := s.sc.Encode(flashName, f)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name: flashName, Value: encoded, Path: "/",
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop returns the pending flash, if any, and clears it.
func (s *FlashStore) Pop(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	c, err := r.Cookie(flashName)
	if err != nil {
		return Flash{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name: flashName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	var f Flash
	if err := s.sc.Decode(flashName, c.Value, &f); err != nil {
		return Flash{}, false
	}
	return f, f.Message != ""
}
