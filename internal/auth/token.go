package auth

import (
	"context"
	"sync"
)

// TokenManager supplies the bearer token for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(token string)
}

// StaticTokenManager holds a single token that only changes through SetToken.
type StaticTokenManager struct {
	mutex sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager seeded with token, which may
// be empty.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the current token. An empty token is not an error: the
// request is sent and the API rejects it.
func (m *StaticTokenManager) GetToken(_ context.Context) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.token, nil
}

// SetToken replaces the current token.
func (m *StaticTokenManager) SetToken(token string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.token = token
}

// Token returns the current token without a context.
func (m *StaticTokenManager) Token() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.token
}
