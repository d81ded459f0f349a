package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mathrent/MathRent-LoanService/internal/api/handlers"
)

type contextKey string

const sessionKey contextKey = "session"

const bearerPrefix = "Bearer "

// Session is the authenticated identity extracted from the access token.
// Token issuance lives in the account service; this service only verifies.
type Session struct {
	UserID int64
	Name   string
	NIM    string
	Role   string
}

// Claims is the JWT payload issued by the account service.
type Claims struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	NIM    string `json:"nim"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the Bearer token and places the session into the request
// context. Unauthenticated requests get a 401.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				handlers.RespondUnauthorized(w, "token akses tidak ditemukan")
				return
			}

			claims, err := parseToken(strings.TrimPrefix(header, bearerPrefix), secret)
			if err != nil {
				handlers.RespondUnauthorized(w, "token akses tidak valid")
				return
			}

			session := &Session{
				UserID: claims.UserID,
				Name:   claims.Name,
				NIM:    claims.NIM,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
		})
	}
}

// RequireRole rejects authenticated requests whose session role differs.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok || session.Role != role {
				handlers.RespondForbidden(w, "akses ditolak")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSession returns the session placed into the context by Auth.
func GetSession(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)
	return session, ok
}

// GetUserID returns the authenticated user's ID.
func GetUserID(ctx context.Context) (int64, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return 0, false
	}
	return session.UserID, true
}

func parseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
