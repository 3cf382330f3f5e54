package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

const localTokenTTL = 24 * time.Hour

// Local is an in-process IdentityStore for development and tests. It keeps
// accounts in memory, hashes passwords with bcrypt, and issues HS256 tokens
// that ResolveToken validates, matching the behavior of the hosted service
// closely enough to run the whole stack without network access.
type Local struct {
	jwtSecret string

	mu    sync.RWMutex
	users map[string]*localUser // keyed by identity id
}

type localUser struct {
	id           string
	email        string
	passwordHash string
	metadata     map[string]string
}

func NewLocal(jwtSecret string) *Local {
	return &Local{
		jwtSecret: jwtSecret,
		users:     make(map[string]*localUser),
	}
}

func (l *Local) ResolveToken(_ context.Context, token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(l.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)

	l.mu.RLock()
	defer l.mu.RUnlock()
	user, ok := l.users[sub]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &domain.Identity{ID: user.id, Email: user.email}, nil
}

func (l *Local) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if user := l.findByEmailLocked(email); user != nil {
		return &domain.Identity{ID: user.id, Email: user.email}, nil
	}
	return nil, nil
}

func (l *Local) Create(_ context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.findByEmailLocked(in.Email) != nil {
		return nil, domain.ErrUserExists
	}

	user := &localUser{
		id:           uuid.NewString(),
		email:        in.Email,
		passwordHash: string(hash),
		metadata:     in.Metadata,
	}
	l.users[user.id] = user
	return &domain.Identity{ID: user.id, Email: user.email}, nil
}

func (l *Local) Update(_ context.Context, id string, in ports.UpdateIdentityInput) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	user, ok := l.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}

	if in.Email != nil {
		if other := l.findByEmailLocked(*in.Email); other != nil && other.id != id {
			return domain.ErrUserExists
		}
		user.email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.passwordHash = string(hash)
	}
	if in.Metadata != nil {
		user.metadata = in.Metadata
	}
	return nil
}

func (l *Local) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(l.users, id)
	return nil
}

func (l *Local) GenerateRecoveryLink(_ context.Context, email, redirectTo string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	user := l.findByEmailLocked(email)
	if user == nil {
		return "", domain.ErrUserNotFound
	}

	token, err := l.signToken(user, 15*time.Minute)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s?token_hash=%s&type=recovery", redirectTo, token), nil
}

// SignIn validates a password and issues a bearer token. Used by the client
// session manager and by development logins; the hosted service exposes the
// equivalent password grant.
func (l *Local) SignIn(_ context.Context, email, password string) (string, *domain.Identity, error) {
	l.mu.RLock()
	user := l.findByEmailLocked(email)
	l.mu.RUnlock()
	if user == nil {
		return "", nil, domain.ErrInvalidToken
	}
	if bcrypt.CompareHashAndPassword([]byte(user.passwordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidToken
	}

	token, err := l.signToken(user, localTokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &domain.Identity{ID: user.id, Email: user.email}, nil
}

func (l *Local) signToken(user *localUser, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.id,
		"email": user.email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(l.jwtSecret))
}

// findByEmailLocked requires l.mu to be held.
func (l *Local) findByEmailLocked(email string) *localUser {
	for _, u := range l.users {
		if u.email == email {
			return u
		}
	}
	return nil
}
