package auth

import (
	"net/http"
	"strings"

	"murim-academy/internal/domain"
)

// Kind classifies the caller of a request.
type Kind int

const (
	Anonymous Kind = iota
	Authenticated
	Administrator
)

func (k Kind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case Administrator:
		return "administrator"
	default:
		return "anonymous"
	}
}

// Classification is the outcome of inspecting an Authorization header.
type Classification struct {
	Kind     Kind
	Identity Identity
}

// Decision is either Allowed (Status == 0) or Denied with a status and message.
// Callers translate it into a response exactly once.
type Decision struct {
	Identity Identity
	Status   int
	Message  string
}

func (d Decision) Allowed() bool {
	return d.Status == 0
}

func allow(identity Identity) Decision {
	return Decision{Identity: identity}
}

func deny(status int, message string) Decision {
	return Decision{Status: status, Message: message}
}

// Guard classifies callers from their bearer token.
type Guard struct {
	tokens *TokenService
}

func NewGuard(tokens *TokenService) *Guard {
	return &Guard{tokens: tokens}
}

// Classify never fails: missing, malformed, and invalid credentials are all anonymous.
func (g *Guard) Classify(header string) Classification {
	token, ok := bearerToken(header)
	if !ok {
		return Classification{Kind: Anonymous}
	}
	claims, ok := g.tokens.Verify(token)
	if !ok {
		return Classification{Kind: Anonymous}
	}

	identity := claims.Identity()
	if identity.Role == domain.RoleAdmin {
		return Classification{Kind: Administrator, Identity: identity}
	}
	return Classification{Kind: Authenticated, Identity: identity}
}

func (g *Guard) RequireAuth(header string) Decision {
	c := g.Classify(header)
	if c.Kind == Anonymous {
		return deny(http.StatusUnauthorized, "not authenticated")
	}
	return allow(c.Identity)
}

func (g *Guard) RequireAdmin(header string) Decision {
	c := g.Classify(header)
	switch c.Kind {
	case Anonymous:
		return deny(http.StatusUnauthorized, "not authenticated")
	case Administrator:
		return allow(c.Identity)
	default:
		return deny(http.StatusForbidden, "permission denied")
	}
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
