package admin

import (
	"errors"

	handlershared "github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

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

var notFoundErrorRules = []mappedHandlerError{
	{target: service.ErrContainerNotFound, code: response.CodeNotFound, msg: "container not found"},
	{target: service.ErrContainerTypeNotFound, code: response.CodeNotFound, msg: "container type not found"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, msg: "restaurant not found"},
	{target: service.ErrQRCodeExhausted, code: response.CodeInternal, msg: "qr code generation exhausted its retries"},
}

func respondAdminError(c *gin.Context, err error, fallbackMsg string) {
	respondWithMappedError(c, err, notFoundErrorRules, response.CodeInternal, fallbackMsg)
}
