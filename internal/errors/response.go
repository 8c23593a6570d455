package errors

import (
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/constants"
)

// HTTPResponse returns the status and error envelope for err. Client errors
// carry their code under "error". Server errors only expose the wrapped cause
// when includeCause is set, which callers tie to the development environment.
func HTTPResponse(err error, includeCause bool) (int, map[string]any) {
	status := ToHTTPStatus(err)

	domainErr := GetDomainError(err)
	if domainErr == nil {
		detail := ""
		if includeCause && err != nil {
			detail = err.Error()
		}
		return http.StatusInternalServerError, constants.BuildErrorResponse(constants.MsgInternalError, detail)
	}

	if status >= http.StatusInternalServerError {
		detail := ""
		if includeCause {
			detail = Cause(err)
		}
		return status, constants.BuildErrorResponse(domainErr.Message, detail)
	}

	return status, constants.BuildErrorResponse(domainErr.Message, domainErr.Code)
}
