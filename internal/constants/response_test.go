package constants

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 10, Offset: 0}},
		{"?page=3&limit=20", PaginationParams{Page: 3, Limit: 20, Offset: 40}},
		{"?page=0&limit=0", PaginationParams{Page: 1, Limit: 1, Offset: 0}},
		{"?page=-2&limit=500", PaginationParams{Page: 1, Limit: 100, Offset: 0}},
		{"?page=abc&limit=xyz", PaginationParams{Page: 1, Limit: 10, Offset: 0}},
		{"?page=9223372036854775807&limit=10", PaginationParams{
			Page:   math.MaxInt/10 + 1,
			Limit:  10,
			Offset: math.MaxInt / 10 * 10,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/users"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePaginationParams(c))
		})
	}
}

func TestBuildResponses(t *testing.T) {
	ok := BuildSuccessResponse(MsgLoggedOut, nil, nil)
	assert.Equal(t, true, ok[ResponseFieldSuccess])
	assert.Contains(t, ok, ResponseFieldData)
	assert.Nil(t, ok[ResponseFieldData])
	assert.NotContains(t, ok, ResponseFieldMeta)

	list := BuildSuccessResponse(MsgUsersRetrieved, []string{}, &PaginationMeta{Page: 1, Limit: 10})
	assert.Contains(t, list, ResponseFieldMeta)

	failure := BuildErrorResponse(MsgInternalError, "")
	assert.Equal(t, false, failure[ResponseFieldSuccess])
	assert.NotContains(t, failure, ResponseFieldError)

	invalid := BuildValidationErrorResponse(MsgValidationFailed, []string{"name is required"})
	assert.Equal(t, []string{"name is required"}, invalid[ResponseFieldDetails])
}
