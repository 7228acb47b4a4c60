package shared

import (
	"errors"

	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

var errMissingContextKey = errors.New("missing context key")

// GetContextUint reads a uint value stored on the gin context under any of
// the given keys. Middleware may store IDs as uint, int or float64 depending
// on how the value was produced.
func GetContextUint(c *gin.Context, keys ...string) (uint, error) {
	for _, key := range keys {
		value, ok := c.Get(key)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case uint:
			return v, nil
		case int:
			if v >= 0 {
				return uint(v), nil
			}
		case int64:
			if v >= 0 {
				return uint(v), nil
			}
		case float64:
			if v >= 0 {
				return uint(v), nil
			}
		}
	}
	return 0, errMissingContextKey
}

// GetUserID returns the authenticated user ID set by the auth middleware.
func GetUserID(c *gin.Context) (uint, error) {
	return GetContextUint(c, "user_id")
}

// GetRole returns the authenticated user's role.
func GetRole(c *gin.Context) string {
	if value, ok := c.Get("role"); ok {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}

// GetActor assembles the caller identity from the auth middleware keys.
func GetActor(c *gin.Context) (service.Actor, error) {
	userID, err := GetUserID(c)
	if err != nil {
		return service.Actor{}, err
	}
	actor := service.Actor{
		ID:   userID,
		Role: GetRole(c),
	}
	if restaurantID, err := GetContextUint(c, "restaurant_id"); err == nil {
		actor.RestaurantID = &restaurantID
	}
	return actor, nil
}
