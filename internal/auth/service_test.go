package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/notify"
	"github.com/escrowline/backend/internal/testutil"
)

// recordingMailer keeps every message it is asked to send.
type recordingMailer struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func setupAuth(t *testing.T) (*AuthService, *recordingMailer) {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &User{})
	cfg := testAuthConfig()
	mailer := &recordingMailer{}
	svc := NewAuthService(db, NewPasswordHasher(cfg.PasswordKey), NewTokenService(cfg), mailer, "https://app.escrowline.test/reset-password")
	return svc, mailer
}

func register(t *testing.T, svc *AuthService) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), &RegisterDTO{
		Email: "Ada@Example.com", Password: "analytical-engine", FirstName: "Ada", LastName: "Lovelace",
	})
	require.NoError(t, err)
	return user
}

func resetToken(t *testing.T, msg notify.Message) string {
	t.Helper()
	for _, line := range strings.Split(msg.Body, "\n") {
		if strings.HasPrefix(line, "https://") {
			link, err := url.Parse(line)
			require.NoError(t, err)
			return link.Query().Get("token")
		}
	}
	t.Fatalf("no reset link in %q", msg.Body)
	return ""
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	user := register(t, svc)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Len(t, user.Salt, 32)
	assert.NotContains(t, user.PasswordHash, "analytical-engine")

	_, err := svc.Register(ctx, &RegisterDTO{Email: "ada@example.com", Password: "another-password", FirstName: "A", LastName: "L"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = svc.Register(ctx, &RegisterDTO{Email: "grace@example.com", Password: "short", FirstName: "G", LastName: "H"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()
	user := register(t, svc)

	_, err := svc.Login(ctx, &LoginDTO{Email: "ada@example.com", Password: "wrong-password"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, "invalid credentials", apperr.Message(err))

	_, err = svc.Login(ctx, &LoginDTO{Email: "nobody@example.com", Password: "analytical-engine"})
	assert.Equal(t, "invalid credentials", apperr.Message(err))

	pair, err := svc.Login(ctx, &LoginDTO{Email: " ADA@example.com", Password: "analytical-engine"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Email, claims.Email)

	refreshed, err := svc.Refresh(ctx, &RefreshDTO{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Empty(t, refreshed.RefreshToken)

	_, err = svc.Refresh(ctx, &RefreshDTO{RefreshToken: pair.AccessToken})
	assert.Equal(t, "invalid token", apperr.Message(err))

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err = svc.Refresh(ctx, &RefreshDTO{RefreshToken: pair.RefreshToken})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestAuthService_UpdateUser(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()
	user := register(t, svc)

	name := "Augusta"
	password := "difference-engine"
	updated, err := svc.UpdateUser(ctx, user.ID, &UpdateUserDTO{FirstName: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.NotEqual(t, user.Salt, updated.Salt)

	_, err = svc.VerifyCredentials(ctx, user.Email, "analytical-engine")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	_, err = svc.VerifyCredentials(ctx, user.Email, password)
	assert.NoError(t, err)

	empty := " "
	_, err = svc.UpdateUser(ctx, user.ID, &UpdateUserDTO{LastName: &empty})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.UpdateUser(ctx, uuid.New(), &UpdateUserDTO{FirstName: &name})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestAuthService_PasswordReset(t *testing.T) {
	svc, mailer := setupAuth(t)
	ctx := context.Background()
	user := register(t, svc)

	svc.RequestPasswordReset(ctx, "unknown@example.com")
	assert.Empty(t, mailer.sent)

	svc.RequestPasswordReset(ctx, "ada@example.com")
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, user.Email, mailer.sent[0].To)
	token := resetToken(t, mailer.sent[0])
	require.NotEmpty(t, token)

	err := svc.ResetPassword(ctx, &PasswordResetDTO{Token: token, NewPassword: "short"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.ResetPassword(ctx, &PasswordResetDTO{Token: token, NewPassword: "babbage-and-co"}))
	_, err = svc.VerifyCredentials(ctx, user.Email, "babbage-and-co")
	assert.NoError(t, err)

	err = svc.ResetPassword(ctx, &PasswordResetDTO{Token: token, NewPassword: "yet-another-one"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "a reset token works once")
}

func TestAuthService_RequestPasswordReset_MailFailure(t *testing.T) {
	svc, mailer := setupAuth(t)
	register(t, svc)
	mailer.err = errors.New("mailbox full")

	assert.NotPanics(t, func() { svc.RequestPasswordReset(context.Background(), "ada@example.com") })
	assert.Len(t, mailer.sent, 1)
}
