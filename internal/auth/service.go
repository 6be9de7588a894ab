package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/apperr"
	"github.com/escrowline/backend/internal/notify"
	"github.com/escrowline/backend/internal/store"
)

const minPasswordLength = 8

// AuthService handles registration, sign in and the account of the signed-in
// user.
type AuthService struct {
	users    *store.Table[uuid.UUID, User]
	hasher   *PasswordHasher
	tokens   *TokenService
	mailer   notify.Mailer
	resetURL string
}

func NewAuthService(db *gorm.DB, hasher *PasswordHasher, tokens *TokenService, mailer notify.Mailer, resetURL string) *AuthService {
	return &AuthService{
		users:    store.NewTable(db, "id", func(u *User) uuid.UUID { return u.ID }),
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: resetURL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperr.Validation("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// Register creates a user. Email addresses are unique.
func (as *AuthService) Register(ctx context.Context, req *RegisterDTO) (*User, error) {
	if req == nil {
		return nil, apperr.Validation("register request cannot be nil")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	existing, err := as.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("User already exists")
	}

	salt, err := as.hasher.NewSalt()
	if err != nil {
		return nil, apperr.Internal(err, "failed to register user")
	}
	user := &User{
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Salt:         salt,
		PasswordHash: as.hasher.Hash(req.Password, salt),
	}
	if err := as.users.Put(ctx, user); err != nil {
		return nil, apperr.Internal(err, "failed to register user")
	}

	slog.InfoContext(ctx, "user registered", "userId", user.ID)
	return user, nil
}

// VerifyCredentials returns the user whose email and password match.
// Unknown emails and wrong passwords fail the same way.
func (as *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {
	user, err := as.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !as.hasher.Verify(password, user.Salt, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return user, nil
}

// Login verifies credentials and issues an access and a refresh token.
func (as *AuthService) Login(ctx context.Context, req *LoginDTO) (*TokenPair, error) {
	user, err := as.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		slog.WarnContext(ctx, "login failed", "error", err)
		return nil, err
	}

	access, err := as.tokens.Issue(user, TokenAccess, "")
	if err != nil {
		return nil, apperr.Internal(err, "failed to issue access token")
	}
	refresh, err := as.tokens.Issue(user, TokenRefresh, "")
	if err != nil {
		return nil, apperr.Internal(err, "failed to issue refresh token")
	}

	slog.InfoContext(ctx, "user logged in", "userId", user.ID)
	return &TokenPair{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(as.tokens.TTL(TokenAccess).Seconds()),
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The user must
// still exist.
func (as *AuthService) Refresh(ctx context.Context, req *RefreshDTO) (*TokenPair, error) {
	user, _, err := as.userFromToken(ctx, req.RefreshToken, TokenRefresh)
	if err != nil {
		return nil, err
	}

	access, err := as.tokens.Issue(user, TokenAccess, "")
	if err != nil {
		return nil, apperr.Internal(err, "failed to issue access token")
	}
	return &TokenPair{
		UserID:      user.ID,
		AccessToken: access,
		ExpiresIn:   int64(as.tokens.TTL(TokenAccess).Seconds()),
	}, nil
}

// Authenticate verifies an access token and returns its claims.
func (as *AuthService) Authenticate(token string) (*Claims, error) {
	claims, err := as.tokens.Verify(token, TokenAccess)
	if err != nil {
		return nil, tokenError(err)
	}
	return claims, nil
}

func (as *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := as.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err, "failed to retrieve user")
	}
	return user, nil
}

// UpdateUser changes the names or the password of a user. A new password gets
// a new salt.
func (as *AuthService) UpdateUser(ctx context.Context, userID uuid.UUID, req *UpdateUserDTO) (*User, error) {
	if req == nil {
		return nil, apperr.Validation("update request cannot be nil")
	}

	fields := make(map[string]any)
	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, apperr.Validation("firstName cannot be empty")
		}
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, apperr.Validation("lastName cannot be empty")
		}
		fields["last_name"] = *req.LastName
	}
	if req.Password != nil {
		if err := as.passwordFields(fields, *req.Password); err != nil {
			return nil, err
		}
	}

	if err := as.users.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err, "failed to update user")
	}
	return as.GetUser(ctx, userID)
}

func (as *AuthService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := as.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal(err, "failed to delete user")
	}
	slog.InfoContext(ctx, "user deleted", "userId", userID)
	return nil
}

// RequestPasswordReset mails a reset link when a user with email exists. It
// never reports whether the address is known, and mail failures are only
// logged.
func (as *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	user, err := as.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		slog.ErrorContext(ctx, "password reset lookup failed", "error", err)
		return
	}
	if user == nil {
		slog.DebugContext(ctx, "password reset requested for unknown email")
		return
	}

	token, err := as.tokens.Issue(user, TokenReset, resetStamp(user))
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue reset token", "userId", user.ID, "error", err)
		return
	}

	msg := notify.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password. It expires in %s.\n\n%s\n",
			user.FirstName, as.tokens.TTL(TokenReset), as.resetLink(token)),
	}
	if err := as.mailer.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset email", "userId", user.ID, "error", err)
		return
	}
	slog.InfoContext(ctx, "password reset email sent", "userId", user.ID)
}

// ResetPassword sets a new password using a token from RequestPasswordReset.
// The token is rejected once the password has changed.
func (as *AuthService) ResetPassword(ctx context.Context, req *PasswordResetDTO) error {
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}
	user, claims, err := as.userFromToken(ctx, req.Token, TokenReset)
	if err != nil {
		return err
	}
	if claims.Stamp != resetStamp(user) {
		return apperr.Unauthorized("invalid token")
	}

	fields := make(map[string]any)
	if err := as.passwordFields(fields, req.NewPassword); err != nil {
		return err
	}
	if err := as.users.Update(ctx, user.ID, fields); err != nil {
		return apperr.Internal(err, "failed to reset password")
	}
	slog.InfoContext(ctx, "password reset", "userId", user.ID)
	return nil
}

func (as *AuthService) passwordFields(fields map[string]any, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	salt, err := as.hasher.NewSalt()
	if err != nil {
		return apperr.Internal(err, "failed to hash password")
	}
	fields["salt"] = salt
	fields["password_hash"] = as.hasher.Hash(password, salt)
	return nil
}

func (as *AuthService) userFromToken(ctx context.Context, token string, kind TokenKind) (*User, *Claims, error) {
	claims, err := as.tokens.Verify(token, kind)
	if err != nil {
		return nil, nil, tokenError(err)
	}
	userID, _ := claims.UserID()
	user, err := as.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.Unauthorized("invalid token")
		}
		return nil, nil, apperr.Internal(err, "failed to retrieve user")
	}
	return user, claims, nil
}

func (as *AuthService) findByEmail(ctx context.Context, email string) (*User, error) {
	users, err := as.users.Scan(ctx, store.Filter{Where: map[string]any{"email": email}, Limit: 1})
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up user")
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (as *AuthService) resetLink(token string) string {
	link, err := url.Parse(as.resetURL)
	if err != nil {
		return as.resetURL + "?token=" + url.QueryEscape(token)
	}
	q := link.Query()
	q.Set("token", token)
	link.RawQuery = q.Encode()
	return link.String()
}

func resetStamp(user *User) string {
	return user.PasswordHash[:16]
}

func tokenError(err error) error {
	if errors.Is(err, ErrTokenExpired) {
		return apperr.Unauthorized("token expired")
	}
	return apperr.Unauthorized("invalid token")
}
