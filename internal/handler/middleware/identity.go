package middleware

import (
	"errors"
	"net/http"

	"lendshare/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerHeader carries the acting user's id on every authenticated call.
const SharerHeader = "X-Sharer-User-Id"

const userIDKey = "user_id"

var (
	errMissingSharerHeader = errors.New("missing " + SharerHeader + " header")
	errInvalidSharerHeader = errors.New("invalid " + SharerHeader + " header")
)

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// RequireUser resolves the acting user from the sharer header. The id
// is only parsed here; existence checks belong to the usecases.
func (m *IdentityMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest, errMissingSharerHeader, "Missing user identity header", nil)
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidSharerHeader, "Invalid user identity header", nil)
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
