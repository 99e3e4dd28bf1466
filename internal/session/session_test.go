package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/kv"
)

var demoUser = domain.User{
	ID:            "usr-demo",
	Name:          "Demo User",
	Email:         "demo@example.com",
	KYCStatus:     domain.KYCVerified,
	WalletBalance: decimal.RequireFromString("1500.25"),
}

func newTestManager(store kv.Store) *Manager {
	return NewManager(store, demoUser, Options{
		Secret:    []byte("test-secret"),
		TTL:       time.Hour,
		KeyPrefix: "test:",
	})
}

func TestLoginResolvesToDemoUser(t *testing.T) {
	store := kv.NewMemory()
	m := newTestManager(store)

	sess, err := m.Login(context.Background(), "anyone@example.com", "whatever")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sess.User.ID != demoUser.ID {
		t.Fatalf("expected demo user, got %s", sess.User.ID)
	}
	if sess.Token == "" || sess.ID == "" {
		t.Fatal("expected token and session id")
	}
	if _, err := store.Get(context.Background(), UserKey("test:", sess.ID)); err != nil {
		t.Fatalf("expected user key to be written, got %v", err)
	}
}

func TestLoginRequiresFields(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	if _, err := m.Login(context.Background(), " ", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := m.Register(context.Background(), "", "a@b.c", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	ctx := context.Background()

	sess, err := m.Login(ctx, "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := m.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("expected session %s, got %s", sess.ID, got.ID)
	}
	if !got.User.WalletBalance.Equal(demoUser.WalletBalance) {
		t.Fatalf("wallet balance lost in round trip: %s", got.User.WalletBalance)
	}
	if got.User.KYCStatus != domain.KYCVerified {
		t.Fatalf("kyc status lost in round trip: %s", got.User.KYCStatus)
	}
}

func TestRegisterStoresSubmittedProfile(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	ctx := context.Background()

	sess, err := m.Register(ctx, " Riya Sen ", "riya@example.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if sess.User.Name != "Riya Sen" || sess.User.Email != "riya@example.com" {
		t.Fatalf("unexpected session user %+v", sess.User)
	}

	got, err := m.Authenticate(ctx, sess.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	u := got.User
	if u.Name != "Riya Sen" || u.Email != "riya@example.com" {
		t.Fatalf("expected submitted name and email stored, got %q <%s>", u.Name, u.Email)
	}
	if u.KYCStatus != domain.KYCPending {
		t.Fatalf("expected pending kyc for a new registration, got %s", u.KYCStatus)
	}
	if u.ID != demoUser.ID || !u.WalletBalance.Equal(demoUser.WalletBalance) {
		t.Fatalf("expected the demo account behind the registration, got %+v", u)
	}
	if demoUser.Name != "Demo User" {
		t.Fatalf("registration mutated the demo user: %q", demoUser.Name)
	}

	login, _ := m.Login(ctx, "a@b.c", "pw")
	if login.User.Name != demoUser.Name || login.User.KYCStatus != domain.KYCVerified {
		t.Fatalf("expected later logins to keep the demo profile, got %+v", login.User)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	ctx := context.Background()

	sess, _ := m.Login(ctx, "a@b.c", "pw")
	if err := m.SetTheme(ctx, sess.ID, domain.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if err := m.Logout(ctx, sess.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := m.Authenticate(ctx, sess.Token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	theme, err := m.Theme(ctx, sess.ID)
	if err != nil || theme != domain.DefaultTheme {
		t.Fatalf("expected theme reset to default, got %q (%v)", theme, err)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	ctx := context.Background()

	if _, err := m.Authenticate(ctx, ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
	if _, err := m.Authenticate(ctx, "not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	other := NewManager(kv.NewMemory(), demoUser, Options{Secret: []byte("other")})
	sess, _ := other.Login(ctx, "a@b.c", "pw")
	if _, err := m.Authenticate(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	ctx := context.Background()
	now := time.Now()
	m.WithClock(func() time.Time { return now })

	sess, _ := m.Login(ctx, "a@b.c", "pw")
	now = now.Add(2 * time.Hour)

	if _, err := m.Authenticate(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestThemeDefaultsAndPersists(t *testing.T) {
	m := newTestManager(kv.NewMemory())
	ctx := context.Background()

	theme, err := m.Theme(ctx, "sid")
	if err != nil || theme != domain.ThemeLight {
		t.Fatalf("expected light default, got %q (%v)", theme, err)
	}
	if err := m.SetTheme(ctx, "sid", domain.ThemeDark); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	theme, _ = m.Theme(ctx, "sid")
	if theme != domain.ThemeDark {
		t.Fatalf("expected dark, got %q", theme)
	}
}

func TestLoginHonoursCancellation(t *testing.T) {
	m := NewManager(kv.NewMemory(), demoUser, Options{Secret: []byte("s"), Latency: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Login(ctx, "a@b.c", "pw"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractBearer(t *testing.T) {
	if got := ExtractBearer("Bearer abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := ExtractBearer("bearer  xyz "); got != "xyz" {
		t.Fatalf("expected xyz, got %q", got)
	}
	if got := ExtractBearer("Basic abc"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
