package constants

// HTTP Header Names
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
)

// BearerPrefix is the required scheme prefix of the Authorization header
const BearerPrefix = "Bearer "

// Common HTTP Error Messages
const (
	MsgUnauthorized     = "Unauthorized access"
	MsgNotFound         = "Resource not found"
	MsgRouteNotFound    = "Route not found"
	MsgBadRequest       = "Invalid request"
	MsgInternalError    = "Internal server error"
	MsgValidationFailed = "Validation failed"
	MsgInvalidJSON      = "Invalid JSON format"
)

// HTTP Success Messages
const (
	MsgAPIRunning     = "API is running"
	MsgRegistered     = "Registration successful"
	MsgLoggedIn       = "Login successful"
	MsgTokenRefreshed = "Access token refreshed"
	MsgLoggedOut      = "Logout successful"
	MsgAuthenticated  = "Authenticated"
	MsgUsersRetrieved = "Users retrieved successfully"
	MsgUserRetrieved  = "User retrieved successfully"
)
