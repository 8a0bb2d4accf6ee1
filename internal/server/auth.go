package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/smallbiznis/cosmocats/internal/authorization"
	"github.com/smallbiznis/cosmocats/internal/config"
	obscontext "github.com/smallbiznis/cosmocats/internal/observability/context"
)

const (
	contextPrincipalKey = "principal"
	contextRolesKey     = "roles"
	contextAuthTypeKey  = "auth_type"

	APIKeyPrincipal = "api-client"
)

type AuthType string

const (
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeJWT    AuthType = "jwt"
	AuthTypeNone   AuthType = "none"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	Subject string
	Roles   []string
	Type    AuthType
}

// Authenticator verifies API keys and HS256 bearer tokens.
type Authenticator struct {
	enabled      bool
	apiKeyHeader string
	apiKeyDigest [sha256.Size]byte
	hasAPIKey    bool
	jwtSecret    []byte
	rolesClaim   string
	parser       *jwt.Parser
}

func NewAuthenticator(cfg config.SecurityConfig) *Authenticator {
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-API-KEY"
	}
	rolesClaim := strings.TrimSpace(cfg.RolesClaim)
	if rolesClaim == "" {
		rolesClaim = "roles"
	}
	a := &Authenticator{
		enabled:      cfg.Enabled,
		apiKeyHeader: header,
		jwtSecret:    []byte(cfg.JWTSecret),
		rolesClaim:   rolesClaim,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		a.apiKeyDigest = sha256.Sum256([]byte(key))
		a.hasAPIKey = true
	}
	return a
}

// Authenticate resolves the caller from the API key header first and the
// bearer token second.
func (a *Authenticator) Authenticate(c *gin.Context) (*Principal, error) {
	if !a.enabled {
		return &Principal{
			Subject: "anonymous",
			Roles:   []string{authorization.RoleAdmin},
			Type:    AuthTypeNone,
		}, nil
	}

	if key := strings.TrimSpace(c.GetHeader(a.apiKeyHeader)); key != "" {
		return a.authenticateAPIKey(key)
	}

	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return nil, ErrUnauthorized
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, ErrUnauthorized
	}
	return a.authenticateToken(parts[1])
}

func (a *Authenticator) authenticateAPIKey(key string) (*Principal, error) {
	if !a.hasAPIKey {
		return nil, ErrUnauthorized
	}
	digest := sha256.Sum256([]byte(key))
	if subtle.ConstantTimeCompare(digest[:], a.apiKeyDigest[:]) != 1 {
		return nil, ErrUnauthorized
	}
	return &Principal{
		Subject: APIKeyPrincipal,
		Roles:   []string{authorization.RoleUser},
		Type:    AuthTypeAPIKey,
	}, nil
}

func (a *Authenticator) authenticateToken(raw string) (*Principal, error) {
	if len(a.jwtSecret) == 0 {
		return nil, ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	token, err := a.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return nil, ErrUnauthorized
	}

	return &Principal{
		Subject: strings.TrimSpace(subject),
		Roles:   rolesFromClaim(claims[a.rolesClaim]),
		Type:    AuthTypeJWT,
	}, nil
}

// rolesFromClaim accepts either a JSON array or a comma separated string.
func rolesFromClaim(value any) []string {
	var raw []string
	switch v := value.(type) {
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = v
	}

	roles := make([]string, 0, len(raw))
	for _, role := range raw {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// AuthRequired rejects requests without valid credentials.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := s.authenticator.Authenticate(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextPrincipalKey, principal.Subject)
		c.Set(contextRolesKey, principal.Roles)
		c.Set(contextAuthTypeKey, string(principal.Type))
		c.Request = c.Request.WithContext(obscontext.WithPrincipal(c.Request.Context(), principal.Subject))
		c.Next()
	}
}

func (s *Server) authorize(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get(contextRolesKey)
		list, _ := roles.([]string)

		err := s.authzSvc.Authorize(c.Request.Context(), list, object, action)
		if err != nil {
			if errors.Is(err, authorization.ErrForbidden) {
				AbortWithError(c, ErrForbidden)
				return
			}
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
