package public

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

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, msg: "account is disabled"},
}

var containerRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrContainerNotFound, code: response.CodeNotFound, msg: "container not found"},
}

var containerStatusErrorRules = []mappedHandlerError{
	{target: service.ErrContainerNotFound, code: response.CodeNotFound, msg: "container not found"},
	{target: service.ErrContainerNotRegistered, code: response.CodeBadRequest, msg: "container is not registered"},
	{target: service.ErrContainerNotOwned, code: response.CodeForbidden, msg: "container belongs to another customer"},
	{target: service.ErrContainerNotActive, code: response.CodeConflict, msg: "container is not active"},
}

func respondLoginError(c *gin.Context, err error) {
	respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "login failed")
}

func respondContainerRegisterError(c *gin.Context, err error) {
	respondWithMappedError(c, err, containerRegisterErrorRules, response.CodeInternal, "container registration failed")
}

func respondContainerStatusError(c *gin.Context, err error) {
	respondWithMappedError(c, err, containerStatusErrorRules, response.CodeInternal, "container status update failed")
}
