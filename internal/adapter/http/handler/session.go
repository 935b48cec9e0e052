package handler

import (
	"time"

	"tron-wallet-service/internal/adapter/http/middleware"
	"tron-wallet-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// sessionFromContext rebuilds the domain session from the authenticated
// request. The second return is false when the JWT middleware did not run.
func sessionFromContext(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(middleware.CtxUsername)
	if !ok {
		return domain.Session{}, false
	}
	username, ok := v.(string)
	if !ok || username == "" {
		return domain.Session{}, false
	}
	return domain.Session{Username: username, LoginAt: time.Now()}, true
}
