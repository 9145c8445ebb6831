// Package session owns the authentication state of the running client: the
// current user, the authenticated flag, and the loading flag used during the
// initial session restore. All state changes go through Manager operations;
// presentation code only reads the accessors.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atelieperto/atelieperto/internal/client/models"
	"github.com/atelieperto/atelieperto/internal/client/store"
	"github.com/atelieperto/atelieperto/internal/common"
	"github.com/atelieperto/atelieperto/internal/logging"
)

// now is a test seam for time-based token/id minting.
var now = time.Now

const placeholderImage = "https://via.placeholder.com/150"

// MsgRegistered is returned by Register on success.
const MsgRegistered = "Cadastro realizado com sucesso! Faça login com suas credenciais."

// MsgResetSent is returned by RequestPasswordReset on success.
const MsgResetSent = "Password reset instructions have been sent to your email."

// ErrInvalidEmail is returned by RequestPasswordReset for malformed addresses.
var ErrInvalidEmail = errors.New("please enter a valid email address")

// Authenticator is the remote fallback collaborator used when no locally
// registered account matches the supplied credentials. The returned user
// carries the remote-issued token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// record is the persisted registration record, keyed by username. It carries
// the plaintext password for login matching; the password never leaves this
// package. Storing it unhashed mirrors the legacy client and is a known
// weakness of the local demo flow.
type record struct {
	models.User
	Password string `json:"password"`
}

// Manager is the single source of truth for "who is logged in". One instance
// per running client; create, Restore once, then operate. Public operations
// are serialized per instance, so overlapping calls cannot interleave at I/O
// suspension points.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	remote Authenticator
	log    logging.Logger

	user          *models.User
	authenticated bool
	loading       bool
}

// NewManager constructs a Manager over the given persisted store. remote may
// be nil, in which case the login fallback path is skipped.
func NewManager(st store.Store, remote Authenticator, log logging.Logger) *Manager {
	return &Manager{store: st, remote: remote, log: log}
}

// User returns the currently authenticated user, or nil.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether a session is active. It is true exactly
// when User() is non-nil.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// IsLoading reports whether the initial session restore is still in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Restore loads a previously persisted session, if any. Invoked once at
// process start. Store read failures are treated as "no session": the client
// fails open to the logged-out state and the error is only logged.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	token, tokenOK, tokenErr := m.store.Get(ctx, common.TokenKey)
	rawUser, userOK, userErr := m.store.Get(ctx, common.UserKey)

	if tokenErr != nil || userErr != nil {
		m.log.Warn(ctx, "session restore failed, starting logged out",
			"token_err", tokenErr, "user_err", userErr)
	}

	var user *models.User
	if userErr == nil && userOK {
		u := &models.User{}
		if err := json.Unmarshal([]byte(rawUser), u); err != nil {
			m.log.Warn(ctx, "stored user record unreadable", "err", err)
		} else {
			user = u
		}
	}

	hasToken := tokenErr == nil && tokenOK && token != ""

	m.mu.Lock()
	defer m.mu.Unlock()
	// user != nil must imply authenticated and vice versa, so a dangling
	// token without a readable user record restores as logged out.
	if hasToken && user != nil {
		m.user = user
		m.authenticated = true
	} else {
		m.user = nil
		m.authenticated = false
	}
	m.loading = false
}

// Login authenticates the supplied credentials. The locally registered record
// for the username is consulted first; if it does not match, the remote
// collaborator (when configured) is tried. On success the fresh token and user
// are persisted and session state is set. On failure the returned error text
// is the user-facing message and the session stays unauthenticated. Faults
// (store I/O, serialization) are mapped to common.ErrConnection, never
// propagated raw.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, err := m.loginLocal(ctx, username, password)
	if err == nil {
		m.setSession(user)
		return user, nil
	}
	if !errors.Is(err, common.ErrInvalidCredentials) {
		m.log.Warn(ctx, "local login fault", "err", err)
		return nil, common.ErrConnection
	}

	if m.remote != nil {
		remoteUser, remoteErr := m.remote.Login(ctx, username, password)
		if remoteErr == nil && remoteUser != nil {
			if err := m.persistSession(ctx, remoteUser); err != nil {
				m.log.Warn(ctx, "persisting remote session failed", "err", err)
				return nil, common.ErrConnection
			}
			m.setSession(remoteUser)
			return remoteUser, nil
		}
		m.log.Debug(ctx, "remote login fallback failed", "err", remoteErr)
	}

	return nil, common.ErrInvalidCredentials
}

// loginLocal matches the supplied credentials against the locally registered
// record and, on success, mints a fresh token and persists the session.
// It returns common.ErrInvalidCredentials when no record matches; any other
// error is a fault.
func (m *Manager) loginLocal(ctx context.Context, username, password string) (*models.User, error) {
	raw, ok, err := m.store.Get(ctx, common.UserRecordPrefix+username)
	if err != nil {
		return nil, fmt.Errorf("reading registered record: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decoding registered record: %w", err)
	}
	if rec.Password != password {
		return nil, common.ErrInvalidCredentials
	}

	user := rec.User
	user.Token = mintToken()

	if err := m.persistSession(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// mintToken synthesizes an opaque, time-based session token, unique per call
// at millisecond resolution.
func mintToken() string {
	return fmt.Sprintf("token_%d", now().UnixMilli())
}

func (m *Manager) persistSession(ctx context.Context, user *models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}
	if err := m.store.Set(ctx, common.TokenKey, user.Token); err != nil {
		return err
	}
	return m.store.Set(ctx, common.UserKey, string(b))
}

func (m *Manager) setSession(user *models.User) {
	m.user = user
	m.authenticated = true
}

// Register persists a new account record keyed by username. Input validation
// is a presentation concern; registration stores whatever it is given, mints
// a numeric identifier, and fills the placeholder avatar/gender fields. The
// user is NOT logged in. Concurrent registration of the same username is
// last-writer-wins.
func (m *Manager) Register(ctx context.Context, data models.RegisterData) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := record{
		User: models.User{
			ID:        now().UnixMilli(),
			Username:  data.Username,
			Email:     data.Email,
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Gender:    "other",
			Image:     placeholderImage,
		},
		Password: data.Password,
	}

	b, err := json.Marshal(rec)
	if err != nil {
		m.log.Warn(ctx, "encoding registration record failed", "err", err)
		return "", common.ErrConnection
	}
	if err := m.store.Set(ctx, common.UserRecordPrefix+data.Username, string(b)); err != nil {
		m.log.Warn(ctx, "persisting registration failed", "err", err)
		return "", common.ErrConnection
	}

	return MsgRegistered, nil
}

// Logout removes the persisted session keys and clears session state. It is
// idempotent: logging out while already logged out is a no-op success. A
// store failure is logged but the in-memory session is cleared regardless.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, common.TokenKey, common.UserKey); err != nil {
		m.log.Warn(ctx, "removing session keys failed", "err", err)
	}

	m.user = nil
	m.authenticated = false
	return nil
}

// RequestPasswordReset performs a shape-only check on the email address and
// returns a confirmation message. No persisted state changes and no mail is
// sent; delivery is an external concern.
func (m *Manager) RequestPasswordReset(email string) (string, error) {
	if !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}
	return MsgResetSent, nil
}
