package request // import "github.com/bookgrove/bookgrove/http/request"

import (
	"net/http"

	"github.com/bookgrove/bookgrove/model"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	UserIDContextKey
	UserNameContextKey
	UserRolesContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// GetUserID returns the authenticated user ID, or 0 for anonymous requests.
func GetUserID(r *http.Request) int32 {
	if v := r.Context().Value(UserIDContextKey); v != nil {
		if value, valid := v.(int32); valid {
			return value
		}
	}
	return 0
}

func GetUsername(r *http.Request) string {
	return getContextStringValue(r, UserNameContextKey)
}

func GetUserRole(r *http.Request) model.Role {
	if v := r.Context().Value(UserRolesContextKey); v != nil {
		if value, valid := v.(model.Role); valid {
			return value
		}
	}
	return ""
}
