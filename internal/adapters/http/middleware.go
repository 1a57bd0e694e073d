package http

import (
	"net/http"

	"github.com/dkeye/MeetChat/internal/auth"
	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/domain"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "client_token"

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware keeps a stable guest token in the session cookie.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		token, _ := sess.Get("ct").(string)
		if token == "" {
			token = genClientToken()
			sess.Set("ct", token)
			if err := sess.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(clientTokenKey, token)
		c.Next()
	}
}

// IdentityMiddleware resolves who is calling. A valid JWT always wins; in
// payload mode a caller without one is the guest behind the session token.
func IdentityMiddleware(jwtm *auth.JWTManager, mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtm != nil {
			if token := auth.TokenFromRequest(c.Request); token != "" {
				claims, err := jwtm.ValidateAccessToken(token)
				if err != nil {
					log.Debug().Err(err).Str("module", "adapters.http").Msg("rejected token")
				} else if id, err := claims.Identity(); err == nil {
					c.Set(auth.IdentityKey, id)
					c.Next()
					return
				}
			}
		}
		if mode == config.AuthModePayload {
			if token := c.GetString(clientTokenKey); token != "" {
				c.Set(auth.IdentityKey, domain.Identity{UserID: domain.UserID(token), DisplayName: "guest"})
			}
		}
		c.Next()
	}
}

func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid identity"})
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(auth.IdentityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok && !id.IsZero()
}
