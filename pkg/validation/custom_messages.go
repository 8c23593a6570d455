package validation

var customValidationMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
		"max":      "Name must be at most 100 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Invalid email format",
		"max":      "Email must be at most 255 characters",
	},
	"password": {
		"required": "Password is required",
		"min":      "Password must be at least 8 characters",
		"maxbytes": "Password must be at most 72 bytes",
		"password": "Password must contain at least one letter and one digit",
	},
}

func CustomMessage(field, tag string) (string, bool) {
	fieldMessages, ok := customValidationMessages[field]
	if !ok {
		return "", false
	}
	msg, ok := fieldMessages[tag]
	return msg, ok
}
