package staff

import (
	"errors"

	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to its API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var rebateErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "staff account not found"},
	{target: service.ErrStaffNoRestaurant, code: response.CodeForbidden, msg: "staff account is not assigned to a restaurant"},
	{target: service.ErrContainerNotFound, code: response.CodeNotFound, msg: "container not found"},
	{target: service.ErrContainerNotRegistered, code: response.CodeBadRequest, msg: "container is not registered"},
	{target: service.ErrContainerTypeNotFound, code: response.CodeNotFound, msg: "container type not found"},
	{target: service.ErrContainerMaxUses, code: response.CodeConflict, msg: "container has reached its maximum uses"},
	{target: service.ErrRebateMappingNotFound, code: response.CodeNotFound, msg: "no rebate mapping for this restaurant and container type"},
}

var returnErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "staff account not found"},
	{target: service.ErrStaffNoRestaurant, code: response.CodeForbidden, msg: "staff account is not assigned to a restaurant"},
	{target: service.ErrContainerNotFound, code: response.CodeNotFound, msg: "container not found"},
	{target: service.ErrContainerNotRegistered, code: response.CodeBadRequest, msg: "container is not registered"},
	{target: service.ErrContainerAlreadyReturned, code: response.CodeConflict, msg: "container was already returned"},
}

var restaurantScopeErrorRules = []mappedHandlerError{
	{target: service.ErrRestaurantScopeDenied, code: response.CodeForbidden, msg: "restaurant is outside your scope"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, msg: "restaurant not found"},
}

func respondRebateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, rebateErrorRules, response.CodeInternal, "rebate processing failed")
}

func respondReturnError(c *gin.Context, err error) {
	respondWithMappedError(c, err, returnErrorRules, response.CodeInternal, "return processing failed")
}

func respondRestaurantScopeError(c *gin.Context, err error) {
	respondWithMappedError(c, err, restaurantScopeErrorRules, response.CodeInternal, "request failed")
}
