package constants

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldSuccess = "success"
	ResponseFieldMessage = "message"
	ResponseFieldData    = "data"
	ResponseFieldError   = "error"
	ResponseFieldDetails = "details"
	ResponseFieldMeta    = "meta"
)

// PaginationParams holds the parsed page/limit pair and the derived offset
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationMeta is returned alongside list responses
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ParsePaginationParams parses page and limit, clamping them into the allowed range
func ParsePaginationParams(c *gin.Context) PaginationParams {
	pageStr := c.DefaultQuery(QueryParamPage, DefaultPage)
	limitStr := c.DefaultQuery(QueryParamLimit, DefaultLimit)

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = MinPage
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit, _ = strconv.Atoi(DefaultLimit)
	}

	if page < MinPage {
		page = MinPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// keep the offset representable
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// BuildSuccessResponse builds the standard success envelope. data is always
// present (null when nil); meta is only added for list responses.
func BuildSuccessResponse(message string, data any, meta *PaginationMeta) map[string]any {
	response := map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
		ResponseFieldData:    data,
	}
	if meta != nil {
		response[ResponseFieldMeta] = meta
	}
	return response
}

// BuildErrorResponse builds the standard failure envelope. errDetail is omitted
// when empty so production responses never leak internals.
func BuildErrorResponse(message string, errDetail string) map[string]any {
	response := map[string]any{
		ResponseFieldSuccess: false,
		ResponseFieldMessage: message,
	}
	if errDetail != "" {
		response[ResponseFieldError] = errDetail
	}
	return response
}

// BuildValidationErrorResponse adds field-level validation messages
func BuildValidationErrorResponse(message string, details any) map[string]any {
	response := BuildErrorResponse(message, "")
	if details != nil {
		response[ResponseFieldDetails] = details
	}
	return response
}
