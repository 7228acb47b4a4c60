package service

import "github.com/aqro/aqro/internal/constants"

// CanAccessRestaurant decides whether a caller may act on data scoped to a
// restaurant. Admins may act anywhere, staff only within their own
// restaurant, customers never.
func CanAccessRestaurant(role string, callerRestaurantID *uint, targetRestaurantID uint) bool {
	switch role {
	case constants.RoleAdmin:
		return true
	case constants.RoleStaff:
		return callerRestaurantID != nil && *callerRestaurantID == targetRestaurantID
	default:
		return false
	}
}
