package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// Debounce keys for the UI-facing actions. Keys are fixed per action, not
// per caller: two rapid submissions of the same form share one window.
const (
	ActionLogin    = "login"
	ActionRegister = "register"
	ActionLogout   = "logout"
)

// AuthService orchestrates registration, login, and logout over the
// credential store, the recent-users list, the session state, and the
// autofill cache. Each attempt validates input first; the first failing
// check wins and no later check runs.
type AuthService struct {
	users     domain.UserRepository
	prefs     domain.PrefsStore
	hasher    PasswordHasher
	recent    *RecentUsers
	autofill  *AutofillCache
	session   *SessionStore
	debounce  *Debouncer
	jwtSecret []byte
}

// NewAuthService creates an AuthService. All collaborators are owned by the
// returned value; nothing here is process-global, so two instances are fully
// isolated (given distinct stores).
func NewAuthService(users domain.UserRepository, prefs domain.PrefsStore, hasher PasswordHasher, debounce *Debouncer, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		prefs:     prefs,
		hasher:    hasher,
		recent:    NewRecentUsers(prefs),
		autofill:  NewAutofillCache(prefs),
		session:   NewSessionStore(prefs),
		debounce:  debounce,
		jwtSecret: []byte(jwtSecret),
	}
}

// Register creates a new account. The username check and the insert are one
// atomic statement in the store, so two concurrent registrations of the same
// username cannot both succeed.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword string) (*domain.User, error) {
	if !s.debounce.TryBegin(ActionRegister) {
		return nil, domain.ErrThrottled
	}
	defer s.debounce.End(ActionRegister)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if confirmPassword == "" {
		return nil, fmt.Errorf("%w: password confirmation is required", domain.ErrInvalidInput)
	}
	if !ValidPassword(password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters and contain both letters and digits", domain.ErrInvalidInput)
	}
	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, records the username as a
// recent login, sets the session, and stores or clears the remembered
// password according to remember.
func (s *AuthService) Login(ctx context.Context, username, password string, remember bool) (*domain.User, error) {
	if !s.debounce.TryBegin(ActionLogin) {
		return nil, domain.ErrThrottled
	}
	defer s.debounce.End(ActionLogin)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if !ValidPassword(password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters and contain both letters and digits", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same answer as a wrong password, so the response does not
			// reveal whether the account exists.
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrUnauthorized
	}

	if err := s.recent.Add(ctx, username); err != nil {
		return nil, fmt.Errorf("update recent users: %w", err)
	}
	if err := s.session.SetCurrent(ctx, username); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}

	if remember {
		if err := s.prefs.Set(ctx, domain.PrefRememberPassword, "true"); err != nil {
			return nil, fmt.Errorf("set remember flag: %w", err)
		}
		if err := s.prefs.Set(ctx, domain.PrefSavedUsername, username); err != nil {
			return nil, fmt.Errorf("save username: %w", err)
		}
		if err := s.autofill.Store(ctx, username, password); err != nil {
			return nil, fmt.Errorf("store autofill entry: %w", err)
		}
	} else {
		if err := s.prefs.Set(ctx, domain.PrefRememberPassword, "false"); err != nil {
			return nil, fmt.Errorf("clear remember flag: %w", err)
		}
		if err := s.prefs.Delete(ctx, domain.PrefSavedUsername); err != nil {
			return nil, fmt.Errorf("clear saved username: %w", err)
		}
		if err := s.autofill.Clear(ctx, username); err != nil {
			return nil, fmt.Errorf("clear autofill entry: %w", err)
		}
	}

	return user, nil
}

// Logout clears the session. When remember-password is off, the departing
// user's autofill entry goes with it.
func (s *AuthService) Logout(ctx context.Context) error {
	if !s.debounce.TryBegin(ActionLogout) {
		return domain.ErrThrottled
	}
	defer s.debounce.End(ActionLogout)

	current, err := s.session.Current(ctx)
	if err != nil {
		return err
	}
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	remembered, err := s.prefs.Get(ctx, domain.PrefRememberPassword)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("load remember flag: %w", err)
	}
	if remembered != "true" && current != "" {
		if err := s.autofill.Clear(ctx, current); err != nil {
			return fmt.Errorf("clear autofill entry: %w", err)
		}
	}

	return nil
}

// CurrentUser returns the logged-in username, or empty when nobody is.
func (s *AuthService) CurrentUser(ctx context.Context) (string, error) {
	return s.session.Current(ctx)
}

// RecentUsernames returns the recent-login suggestions, oldest first.
func (s *AuthService) RecentUsernames(ctx context.Context) ([]string, error) {
	return s.recent.List(ctx)
}

// AutofillFor returns the remembered password for a selected username, or
// empty when remember-password is off or the cached entry has aged out.
func (s *AuthService) AutofillFor(ctx context.Context, username string) (string, error) {
	remembered, err := s.prefs.Get(ctx, domain.PrefRememberPassword)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load remember flag: %w", err)
	}
	if remembered != "true" {
		return "", nil
	}

	password, err := s.autofill.FetchValid(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return password, nil
}

// AutofillExpiringSoon reports whether the remembered password for username
// is inside its final hour of validity.
func (s *AuthService) AutofillExpiringSoon(ctx context.Context, username string) (bool, error) {
	return s.autofill.ExpiringSoon(ctx, username)
}

// GetUserByID retrieves a user by ID, for request authentication.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GenerateToken signs a JWT identifying the user, used by the HTTP layer to
// keep the browser logged in.
func (s *AuthService) GenerateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT and returns the user ID from the
// sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}
