package driven

import (
	"net/http"

	"github.com/jleuth/future-search/internal/domain/model"
)

// IdentityProvider defines the driven port for the external identity/session
// system. The core never creates or validates sessions itself; it only asks
// who the caller is. A nil user means the request is unauthenticated.
type IdentityProvider interface {
	CurrentUser(r *http.Request) *model.User
}
