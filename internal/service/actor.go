package service

// Actor identifies the authenticated caller of a scoped operation.
type Actor struct {
	ID           uint
	Role         string
	RestaurantID *uint
}
