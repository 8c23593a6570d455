package constants

// Pagination Query Parameters
const (
	QueryParamPage   = "page"
	QueryParamLimit  = "limit"
	QueryParamSearch = "search"
	QueryParamSortBy = "sortBy"
	QueryParamOrder  = "order"
)

// Default Pagination Values (as strings for query parsing)
const (
	DefaultPage   = "1"
	DefaultLimit  = "10"
	DefaultSearch = ""
	DefaultSortBy = "createdAt"
	DefaultOrder  = OrderDesc
)

// Pagination Limits
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
)

// Sort Orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortableUserColumns maps the public sortBy names onto database columns.
// Anything not listed here is rejected before it reaches a query.
var SortableUserColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"createdAt":  "created_at",
	"created_at": "created_at",
}
