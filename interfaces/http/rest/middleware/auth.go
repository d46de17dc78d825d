package middleware

import (
	"net/http"
	"strings"

	pkgauth "itemstore-backend/pkg/auth"
	apperrors "itemstore-backend/pkg/errors"
	"itemstore-backend/pkg/response"

	"go.uber.org/zap"
)

// Headers the Lambda entrypoint sets after extracting the API Gateway
// authorizer context. Requests carrying these are already verified upstream
// and are trusted without a second token check.
const (
	HeaderGatewayAuthorized = "X-Api-Gateway-Authorized"
	HeaderUserID            = "X-User-Id"
	HeaderUserEmail         = "X-User-Email"
	HeaderUserName          = "X-User-Name"
)

// Authenticate resolves the caller identity and attaches it to the request
// context. When trustGatewayHeaders is set (Lambda behind an API Gateway JWT
// authorizer, with the entrypoint stripping inbound copies of the identity
// headers), pre-authorized requests are trusted via headers; everything else
// must carry a bearer token the verifier accepts. A standalone server must
// never enable header trust: nothing upstream strips client-supplied copies.
func Authenticate(verifier pkgauth.TokenVerifier, writer *response.Writer, trustGatewayHeaders bool, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustGatewayHeaders && r.Header.Get(HeaderGatewayAuthorized) == "true" {
				userID := r.Header.Get(HeaderUserID)
				if userID == "" {
					writer.Error(w, apperrors.NewUnauthorizedError("Missing user context from API Gateway"))
					return
				}
				principal := &pkgauth.Principal{
					UserID: userID,
					Email:  r.Header.Get(HeaderUserEmail),
					Name:   r.Header.Get(HeaderUserName),
				}
				next.ServeHTTP(w, r.WithContext(pkgauth.SetPrincipal(r.Context(), principal)))
				return
			}

			token := extractToken(r)
			if token == "" {
				writer.Error(w, apperrors.NewUnauthorizedError("User not authenticated"))
				return
			}

			principal, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				logger.Warn("Token verification failed",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				writer.Error(w, apperrors.NewUnauthorizedError("User not authenticated"))
				return
			}

			next.ServeHTTP(w, r.WithContext(pkgauth.SetPrincipal(r.Context(), principal)))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}
