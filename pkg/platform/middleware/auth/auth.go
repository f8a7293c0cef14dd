// Package auth guards the admin surface (rule reloads) with bearer tokens.
// The checkout endpoint itself is unauthenticated inside the service mesh;
// only mutating operations require a token with the admin role.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"canna-gate/pkg/platform/audit"
	request "canna-gate/pkg/platform/middleware/request"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims are the claims the middleware cares about.
type Claims struct {
	Subject string
	Role    string
}

// Context key for the authenticated admin subject.
type contextKeyAdminSubject struct{}

// ContextKeyAdminSubject is exported for tests that build contexts directly.
var ContextKeyAdminSubject = contextKeyAdminSubject{}

// GetAdminSubject retrieves the authenticated admin subject from the context.
func GetAdminSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(ContextKeyAdminSubject).(string); ok {
		return sub
	}
	return ""
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"error_description":%q}`, errCode, errDesc))
}

// auditDenied reports a rejected admin attempt to the security audit trail.
// The send never blocks; a full inbox drops the event.
func auditDenied(inbox chan<- audit.Event, requestID, subject, reason string) {
	if inbox == nil {
		return
	}
	event := audit.Event{
		Category:  audit.CategorySecurity,
		Timestamp: time.Now().UTC(),
		Action:    string(audit.EventAdminAuthFailed),
		RequestID: requestID,
		ActorID:   subject,
		Reason:    reason,
	}
	select {
	case inbox <- event:
	default:
	}
}

// RequireAdmin rejects requests without a valid bearer token carrying the
// admin role. Rejections go to the security audit inbox when one is given.
func RequireAdmin(validator TokenValidator, logger *slog.Logger, inbox chan<- audit.Event) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "admin access denied - missing token",
					"request_id", requestID,
				)
				auditDenied(inbox, requestID, "", "missing token")
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "admin access denied - invalid token",
					"error", err,
					"request_id", requestID,
				)
				auditDenied(inbox, requestID, "", "invalid token")
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			if claims.Role != "admin" {
				logger.WarnContext(ctx, "admin access denied - insufficient role",
					"subject", claims.Subject,
					"role", claims.Role,
					"request_id", requestID,
				)
				auditDenied(inbox, requestID, claims.Subject, "insufficient role")
				writeJSONError(w, http.StatusForbidden, "forbidden", "Admin role required")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyAdminSubject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// HMACValidator validates HS256 tokens signed with a shared key.
type HMACValidator struct {
	key []byte
}

// NewHMACValidator constructs a validator from the shared signing key.
func NewHMACValidator(key string) *HMACValidator {
	return &HMACValidator{key: []byte(key)}
}

// ValidateToken parses and verifies the token, extracting subject and role.
func (v *HMACValidator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	claims := &Claims{}
	if sub, err := mapClaims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	return claims, nil
}
