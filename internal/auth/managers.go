package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// ErrStaticTokenExpired is returned when a fixed token manager is asked to
// refresh; a static token has no credentials behind it.
var ErrStaticTokenExpired = errors.New("static token cannot be refreshed")

// StaticTokenManager serves a caller-supplied token verbatim.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager wraps a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	store := NewTokenStore()
	store.Set(&Token{AccessToken: token, IssuedAt: time.Now()})

	return &StaticTokenManager{store: store}
}

// GetToken returns the stored token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", ErrStaticTokenExpired
	}

	return token.AccessToken, nil
}

// RefreshToken always fails; there is nothing to refresh with.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenExpired
}

// SetToken replaces the stored token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt, IssuedAt: time.Now()})
}

// SessionTokenManager delegates token acquisition to an external session.
type SessionTokenManager struct {
	session distil.Session
}

// NewSessionTokenManager wraps an externally managed session.
func NewSessionTokenManager(session distil.Session) *SessionTokenManager {
	return &SessionTokenManager{session: session}
}

// GetToken asks the session for its current token.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.session.Token(ctx)
}

// RefreshToken asks the session for a token again; session implementations
// re-authenticate internally when theirs has expired.
func (m *SessionTokenManager) RefreshToken(ctx context.Context) error {
	_, err := m.session.Token(ctx)

	return err
}

// SetToken is a no-op; the session owns its token lifecycle.
func (m *SessionTokenManager) SetToken(token string, expiresAt time.Time) {}

// KeystoneTokenManager authenticates against keystone with password
// credentials and re-authenticates when the issued token nears expiry.
type KeystoneTokenManager struct {
	identity *IdentityClient
	creds    Credentials
	store    *TokenStore

	mu      sync.Mutex
	catalog Catalog
}

// NewKeystoneTokenManager creates a manager that authenticates lazily on
// first use.
func NewKeystoneTokenManager(identity *IdentityClient, creds Credentials) *KeystoneTokenManager {
	return &KeystoneTokenManager{
		identity: identity,
		creds:    creds,
		store:    NewTokenStore(),
	}
}

// GetToken returns the current token, authenticating first if none is held
// or the held one is about to expire.
func (m *KeystoneTokenManager) GetToken(ctx context.Context) (string, error) {
	stale := m.store.Get()
	if stale.Valid() {
		return stale.AccessToken, nil
	}

	return m.refresh(ctx, stale)
}

// RefreshToken re-authenticates even when the stored token has not reached
// its expiry yet: a rejected token is no good regardless of the clock.
func (m *KeystoneTokenManager) RefreshToken(ctx context.Context) error {
	_, err := m.refresh(ctx, m.store.Get())

	return err
}

// refresh authenticates and replaces the stored token and catalog. stale is
// the token the caller observed; when another caller has already swapped in
// a valid replacement, that one is reused instead of authenticating twice.
func (m *KeystoneTokenManager) refresh(ctx context.Context, stale *Token) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current := m.store.Get(); current != stale && current.Valid() {
		return current.AccessToken, nil
	}

	result, err := m.identity.Authenticate(ctx, m.creds)
	if err != nil {
		return "", fmt.Errorf("refreshing token: %w", err)
	}

	token := &Token{
		AccessToken: result.Token,
		ExpiresAt:   result.ExpiresAt,
		IssuedAt:    time.Now(),
	}

	m.store.Set(token)
	m.catalog = result.Catalog

	return token.AccessToken, nil
}

// SetToken installs a token directly, bypassing authentication.
func (m *KeystoneTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt, IssuedAt: time.Now()})
}

// Catalog returns the service catalog from the most recent authentication,
// authenticating first if none has happened yet.
func (m *KeystoneTokenManager) Catalog(ctx context.Context) (Catalog, error) {
	_, err := m.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.catalog, nil
}

// cachedToken is the serialized form stored in the token cache.
type cachedToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// CachingTokenManager layers a cache over another token manager so repeated
// client bootstraps reuse a token instead of re-authenticating.
type CachingTokenManager struct {
	delegate TokenManager
	cache    distil.Cache
	key      string
	lifetime time.Duration
}

// NewCachingTokenManager wraps delegate with a cache. The cache key is
// derived from the auth URL and username so different identities never share
// an entry. lifetime bounds how long a cached token is reused.
func NewCachingTokenManager(delegate TokenManager, cache distil.Cache, authURL, username string, lifetime time.Duration) *CachingTokenManager {
	sum := sha256.Sum256([]byte(authURL + "\x00" + username))

	return &CachingTokenManager{
		delegate: delegate,
		cache:    cache,
		key:      "token:" + hex.EncodeToString(sum[:]),
		lifetime: lifetime,
	}
}

// GetToken returns a cached token when one is still valid, falling back to
// the delegate and caching what it issues.
func (m *CachingTokenManager) GetToken(ctx context.Context) (string, error) {
	entry, err := m.cache.Get(ctx, m.key)
	if err == nil && entry != nil {
		var cached cachedToken

		if json.Unmarshal(entry.Value, &cached) == nil {
			token := Token{AccessToken: cached.AccessToken, ExpiresAt: cached.ExpiresAt}
			if token.Valid() {
				return cached.AccessToken, nil
			}
		}
	}

	token, err := m.delegate.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.storeToken(ctx, token)

	return token, nil
}

// RefreshToken drops the cached entry and refreshes through the delegate.
func (m *CachingTokenManager) RefreshToken(ctx context.Context) error {
	_ = m.cache.Delete(ctx, m.key)

	err := m.delegate.RefreshToken(ctx)
	if err != nil {
		return err
	}

	token, err := m.delegate.GetToken(ctx)
	if err != nil {
		return err
	}

	m.storeToken(ctx, token)

	return nil
}

// SetToken installs a token on the delegate and caches it.
func (m *CachingTokenManager) SetToken(token string, expiresAt time.Time) {
	m.delegate.SetToken(token, expiresAt)
	m.storeToken(context.Background(), token)
}

func (m *CachingTokenManager) storeToken(ctx context.Context, token string) {
	expiresAt := time.Now().Add(m.lifetime)

	encoded, err := json.Marshal(cachedToken{AccessToken: token, ExpiresAt: expiresAt})
	if err != nil {
		return
	}

	// Cache failures only cost a re-authentication later.
	_ = m.cache.Set(ctx, m.key, &distil.CacheEntry{Value: encoded, ExpiresAt: expiresAt})
}
