package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/bookgrove/bookgrove/api/auth"
	"github.com/bookgrove/bookgrove/http/request"
	"github.com/bookgrove/bookgrove/http/response"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/model"
	"github.com/bookgrove/bookgrove/store"
	"github.com/bookgrove/bookgrove/util"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type AuthInterceptor struct {
	store  *store.Store
	secret string
}

func NewAuthInterceptor(store *store.Store, secret string) *AuthInterceptor {
	return &AuthInterceptor{store: store, secret: secret}
}

func (m *AuthInterceptor) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		accessToken := getAccessToken(r)

		if accessToken == "" {
			if isUnauthorizeAllowed(r.URL.Path, r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			log.Debug("Failed to authenticate because no access token provided",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", r.UserAgent()),
			)
			response.Unauthorized(w, r)
			return
		}

		user, err := m.authenticate(r.Context(), accessToken)
		if err != nil {
			// A stale token on a public read degrades to anonymous.
			if isUnauthorizeAllowed(r.URL.Path, r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			log.Debug("Failed to authenticate user",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", r.UserAgent()),
				zap.Error(err),
			)
			response.Unauthorized(w, r)
			return
		}

		m.store.SetLastLogin(user.ID)

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, request.UserNameContextKey, user.Username)
		ctx = context.WithValue(ctx, request.UserRolesContextKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthInterceptor) authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims := &auth.ClaimsMessage{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.New("unexpected signing method")
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != auth.KeyID {
			return nil, errors.New("unexpected key id")
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, errors.New("invalid or expired access token")
	}

	userID, err := util.ConvertStringToInt32(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(err, "malformed ID in the token")
	}
	user, err := m.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, errors.Errorf("user not found with ID: %d", userID)
	}
	if user.RowStatus == model.Archived {
		return nil, errors.Errorf("user is archived with ID: %d", userID)
	}

	return user, nil
}

func getAccessToken(r *http.Request) string {
	// Check the HTTP Authorization header first
	authorizationHeaders := r.Header.Get("Authorization")
	// Check bearer token
	if authorizationHeaders != "" {
		splitToken := strings.Split(authorizationHeaders, "Bearer ")
		if len(splitToken) == 2 {
			return splitToken[1]
		}
	}

	// Check the cookie header
	var accessToken string
	for cookie := range r.Cookies() {
		if r.Cookies()[cookie].Name == auth.AccessTokenCookieName {
			accessToken = r.Cookies()[cookie].Value
		}
	}
	return accessToken
}
