package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Identity is the staff member behind the current session.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.StandardClaims
}

// Store holds the single process-wide admin session: the signed token and the
// identity derived from it. The token is persisted to a state file so a
// restart does not log the operator out.
type Store struct {
	verifier Verifier
	secret   []byte
	path     string
	tokenTTL time.Duration

	mu       sync.Mutex
	token    string
	identity Identity
}

// NewStore creates a session store backed by the given credential verifier.
// A token persisted from a previous run is restored when it still parses and
// has not expired; otherwise the state file is discarded.
func NewStore(verifier Verifier, secret []byte, path string) *Store {
	s := &Store{
		verifier: verifier,
		secret:   secret,
		path:     path,
		tokenTTL: 24 * time.Hour,
	}
	s.restore()
	return s
}

// Login verifies the credentials and establishes a new session. The returned
// error is ErrInvalidCredentials for a bad email/password pair.
func (s *Store) Login(ctx context.Context, email, password string) (Identity, error) {
	id, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return Identity{}, err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Name:  id.Name,
		Email: id.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   id.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Identity{}, fmt.Errorf("sign session token: %w", err)
	}

	s.mu.Lock()
	s.token = signed
	s.identity = id
	s.mu.Unlock()

	s.persist(signed)
	return id, nil
}

// Logout drops the token and identity. Safe to call when not logged in.
func (s *Store) Logout() {
	s.mu.Lock()
	s.token = ""
	s.identity = Identity{}
	s.mu.Unlock()
	os.Remove(s.path)
}

// Clear invalidates the session. Used by the gateway when the upstream API
// rejects the credential.
func (s *Store) Clear() { s.Logout() }

// IsAuthenticated reports whether a token is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer token, or "" when logged out. Gateway
// requests read this at call time so a mid-session logout/login is reflected
// in the next request.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns the logged-in staff identity.
func (s *Store) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.token != ""
}

func (s *Store) parse(token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !parsed.Valid {
		return Identity{}, fmt.Errorf("token no longer valid")
	}
	return Identity{ID: c.Subject, Name: c.Name, Email: c.Email}, nil
}

func (s *Store) restore() {
	if s.path == "" {
		return
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	token := strings.TrimSpace(string(raw))
	id, err := s.parse(token)
	if err != nil {
		os.Remove(s.path)
		return
	}
	s.mu.Lock()
	s.token = token
	s.identity = id
	s.mu.Unlock()
}

func (s *Store) persist(token string) {
	if s.path == "" {
		return
	}
	os.MkdirAll(filepath.Dir(s.path), 0o700)
	os.WriteFile(s.path, []byte(token), 0o600)
}
