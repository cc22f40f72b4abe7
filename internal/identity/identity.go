package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the caller's user id, resolved upstream of this service.
const Header = "X-Sharer-User-Id"

const contextKey = "callerID"

// Required is a Gin middleware that extracts the caller id from the
// X-Sharer-User-Id header. Requests without a valid numeric id are rejected.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// CallerID returns the caller's user id stored by Required, or 0 if absent.
func CallerID(c *gin.Context) int64 {
	v, ok := c.Get(contextKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
