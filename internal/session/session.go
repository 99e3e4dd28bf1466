// Package session is the process-wide auth/session holder. Login and
// registration are mocked: after an artificial delay they always resolve to
// the single demo user. The user record and theme flag live in a kv.Store
// under per-session keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/kv"
	"github.com/vanshika/aquafund/internal/simulate"
)

var (
	// ErrMissingCredentials is returned when a required form field is blank.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrInvalidToken is returned for malformed, forged or expired tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrNoSession is returned when the token is valid but the session was cleared.
	ErrNoSession = errors.New("session not found")
)

// Options configures a Manager.
type Options struct {
	Secret    []byte
	TTL       time.Duration
	KeyPrefix string
	Latency   time.Duration
}

// Session is an authenticated session.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Manager issues and resolves sessions.
type Manager struct {
	store  kv.Store
	demo   domain.User
	secret []byte
	ttl    time.Duration
	prefix string
	delay  simulate.Delay
	nowFn  func() time.Time
	newID  func() string
}

// NewManager constructs a Manager that always signs in as demo.
func NewManager(store kv.Store, demo domain.User, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		store:  store,
		demo:   demo,
		secret: opts.Secret,
		ttl:    opts.TTL,
		prefix: opts.KeyPrefix,
		delay:  simulate.Delay(opts.Latency),
		nowFn:  time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (m *Manager) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		m.nowFn = nowFn
	}
}

// Login signs in with any non-blank email and password.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}
	return m.open(ctx, m.demo)
}

// Register accepts any complete registration form. The session holds the
// demo account under the submitted name and email, pending KYC review.
func (m *Manager) Register(ctx context.Context, name, email, password string) (Session, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return Session{}, ErrMissingCredentials
	}
	user := m.demo
	user.Name = name
	user.Email = email
	user.KYCStatus = domain.KYCPending
	return m.open(ctx, user)
}

// Authenticate resolves a bearer token to its live session.
func (m *Manager) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := m.parseToken(token)
	if err != nil {
		return Session{}, err
	}

	raw, err := m.store.Get(ctx, m.userKey(claims.ID))
	if errors.Is(err, kv.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session %s: %w", claims.ID, err)
	}

	user, err := decodeUser(raw)
	if err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", claims.ID, err)
	}

	return Session{
		ID:        claims.ID,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// Logout clears the session's user and theme keys.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, m.userKey(sessionID), m.themeKey(sessionID)); err != nil {
		return fmt.Errorf("clear session %s: %w", sessionID, err)
	}
	return nil
}

// Theme returns the stored theme, or the default when none was set.
func (m *Manager) Theme(ctx context.Context, sessionID string) (domain.Theme, error) {
	raw, err := m.store.Get(ctx, m.themeKey(sessionID))
	if errors.Is(err, kv.ErrNotFound) {
		return domain.DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme %s: %w", sessionID, err)
	}
	theme, err := domain.ParseTheme(string(raw))
	if err != nil {
		return domain.DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores the theme flag for the session's remaining lifetime.
func (m *Manager) SetTheme(ctx context.Context, sessionID string, theme domain.Theme) error {
	if err := m.store.Set(ctx, m.themeKey(sessionID), []byte(theme), m.ttl); err != nil {
		return fmt.Errorf("store theme %s: %w", sessionID, err)
	}
	return nil
}

func (m *Manager) open(ctx context.Context, user domain.User) (Session, error) {
	if err := m.delay.Wait(ctx); err != nil {
		return Session{}, err
	}

	id := m.newID()
	now := m.nowFn()
	expires := now.Add(m.ttl)

	raw, err := encodeUser(user)
	if err != nil {
		return Session{}, fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, m.userKey(id), raw, m.ttl); err != nil {
		return Session{}, fmt.Errorf("store session %s: %w", id, err)
	}

	token, err := m.issueToken(id, user.ID, now, expires)
	if err != nil {
		return Session{}, fmt.Errorf("sign session %s: %w", id, err)
	}

	return Session{
		ID:        id,
		Token:     token,
		ExpiresAt: expires,
		User:      user,
	}, nil
}

// UserKey is the storage key holding the serialized user of a session.
func UserKey(prefix, sessionID string) string {
	return prefix + "session:" + sessionID + ":user"
}

// ThemeKey is the storage key holding the theme flag of a session.
func ThemeKey(prefix, sessionID string) string {
	return prefix + "session:" + sessionID + ":theme"
}

func (m *Manager) userKey(id string) string  { return UserKey(m.prefix, id) }
func (m *Manager) themeKey(id string) string { return ThemeKey(m.prefix, id) }

type userRecord struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	AvatarURL     string          `json:"avatarUrl,omitempty"`
	KYCStatus     string          `json:"kycStatus"`
	WalletBalance decimal.Decimal `json:"walletBalance"`
}

func encodeUser(u domain.User) ([]byte, error) {
	return json.Marshal(userRecord{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		AvatarURL:     u.AvatarURL,
		KYCStatus:     string(u.KYCStatus),
		WalletBalance: u.WalletBalance,
	})
}

func decodeUser(raw []byte) (domain.User, error) {
	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.User{}, err
	}
	kyc, err := domain.ParseKYCStatus(rec.KYCStatus)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		AvatarURL:     rec.AvatarURL,
		KYCStatus:     kyc,
		WalletBalance: rec.WalletBalance,
	}, nil
}
