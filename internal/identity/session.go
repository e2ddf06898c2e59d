package identity

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/storage"
)

// SessionKey is the storage key the signed-in session persists under.
const SessionKey = "session"

// Session is a Provider backed by the durable store, so a signed-in shopper
// stays signed in across gateway restarts.
type Session struct {
	mu      sync.RWMutex
	backend storage.Store
	userID  string
	token   string
}

// NewSession restores any persisted session from backend. An unreadable or
// corrupt value starts the shopper as a guest.
func NewSession(backend storage.Store) *Session {
	s := &Session{backend: backend}
	data, err := backend.Read(SessionKey)
	if err != nil {
		return s
	}
	d := jx.DecodeBytes(data)
	_ = d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "userId":
			s.userID, err = d.Str()
		case "token":
			s.token, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if s.userID == "" {
		s.token = ""
	}
	return s
}

// Login records the authenticated shopper and persists the session.
func (s *Session) Login(userID, token string) error {
	if userID == "" {
		return errors.New("user id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.token = token

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("userId", func(e *jx.Encoder) { e.Str(userID) })
		e.Field("token", func(e *jx.Encoder) { e.Str(token) })
	})
	if err := s.backend.Write(SessionKey, e.Bytes()); err != nil {
		return errors.Wrap(err, "persist session")
	}
	return nil
}

// Logout clears the session. The shopper becomes a guest; the guest cart in
// the local store is left untouched.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.token = ""
	return s.backend.Delete(SessionKey)
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID != ""
}

func (s *Session) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userID != ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
