package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"hrdesk-backend/pkg/common"
)

// Principal is the identity attached to every authenticated request. Tokens
// are validated by the upstream gateway; this layer only reads the claims.
type Principal struct {
	Username string
	Role     string
}

type contextKey string

const principalKey contextKey = "principal"

// FromContext returns the request principal.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// Identity extracts the caller identity from gateway-injected X-User-*
// headers or, failing that, from the claims of the bearer token. The token
// signature is NOT verified here; the gateway authorizer has already done
// that before the request reaches us.
func Identity() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principalFromHeaders(r)
			if !ok {
				p, ok = principalFromBearer(r)
			}
			if !ok {
				common.RespondError(w, http.StatusUnauthorized,
					common.StandardErrorCodes.Unauthorized, "missing identity")
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects requests whose principal role is not in the allow
// list. Must sit inside Identity.
func RequireRoles(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				common.RespondError(w, http.StatusUnauthorized,
					common.StandardErrorCodes.Unauthorized, "missing identity")
				return
			}
			if !allowed[p.Role] {
				common.RespondError(w, http.StatusForbidden,
					common.StandardErrorCodes.Forbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func principalFromHeaders(r *http.Request) (Principal, bool) {
	username := r.Header.Get("X-User-Name")
	if username == "" {
		return Principal{}, false
	}
	return Principal{
		Username: username,
		Role:     r.Header.Get("X-User-Role"),
	}, true
}

func principalFromBearer(r *http.Request) (Principal, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		authHeader = r.Header.Get("authorization")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Principal{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(parts[1], claims); err != nil {
		return Principal{}, false
	}

	username := stringClaim(claims, "username")
	if username == "" {
		username = stringClaim(claims, "cognito:username")
	}
	if username == "" {
		username = stringClaim(claims, "sub")
	}
	if username == "" {
		return Principal{}, false
	}
	return Principal{
		Username: username,
		Role:     stringClaim(claims, "role"),
	}, true
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
