// Package identity adapts the external identity/session system. The service
// never manages sessions itself; it trusts the authenticating reverse proxy
// in front of it to resolve the session cookie and forward the result.
package identity

import (
	"net/http"

	"github.com/jleuth/future-search/internal/domain/model"
	"github.com/jleuth/future-search/internal/domain/port/driven"
)

// Header names set by the authenticating proxy (oauth2-proxy conventions).
const (
	userHeader  = "X-Auth-Request-User"
	emailHeader = "X-Auth-Request-Email"
)

// Compile-time interface satisfaction check.
var _ driven.IdentityProvider = (*HeaderProvider)(nil)

// HeaderProvider implements driven.IdentityProvider from trusted proxy
// headers. It must only be deployed behind a proxy that strips these headers
// from client requests.
type HeaderProvider struct{}

// NewHeaderProvider creates a HeaderProvider.
func NewHeaderProvider() *HeaderProvider {
	return &HeaderProvider{}
}

// CurrentUser returns the caller identified by the proxy headers, or nil for
// an unauthenticated request.
func (p *HeaderProvider) CurrentUser(r *http.Request) *model.User {
	id := r.Header.Get(userHeader)
	if id == "" {
		return nil
	}

	return &model.User{
		ID:    id,
		Email: r.Header.Get(emailHeader),
	}
}
