package service

import "errors"

// Service sentinel errors. Handlers map these onto HTTP status codes with
// errors.Is; anything else is treated as an internal error.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUserDisabled          = errors.New("user disabled")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrRestaurantNotFound    = errors.New("restaurant not found")
	ErrContainerTypeNotFound = errors.New("container type not found")
	ErrContainerNotFound     = errors.New("container not found")
	ErrRebateMappingNotFound = errors.New("no rebate mapping for restaurant and container type")

	ErrContainerNotRegistered   = errors.New("container has no registered owner")
	ErrContainerMaxUses         = errors.New("container reached its maximum uses")
	ErrContainerAlreadyReturned = errors.New("container already returned")
	ErrContainerNotActive       = errors.New("container is not active")
	ErrStaffNoRestaurant        = errors.New("staff account has no restaurant assigned")

	ErrRestaurantScopeDenied = errors.New("restaurant out of caller scope")
	ErrContainerNotOwned     = errors.New("container belongs to another customer")

	ErrQRCodeExhausted = errors.New("could not generate a unique qr code")
)
