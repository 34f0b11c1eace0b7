package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftpoint/attendance-backend-go/internal/domain/user"
)

// currentUser pulls the authenticated user from the verified token.
// Only valid behind the AuthRequired middleware.
func currentUser(r *http.Request) (id string, role user.Role, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}
	id, ok = claims["user_id"].(string)
	if !ok {
		return "", "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", "", false
	}
	return id, user.Role(roleStr), true
}
