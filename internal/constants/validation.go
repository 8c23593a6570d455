package constants

import "time"

// Field Length Limits
const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes and newer x/crypto rejects it outright
	MaxPasswordBytes = 72
	MinNameLength    = 2
	MaxNameLength    = 100
	MaxEmailLength   = 255
)

// Token Settings
const (
	AccessTokenTTL     = 15 * time.Minute
	RefreshTokenTTL    = "7d"
	RefreshTokenBytes  = 32
	MinJWTSecretLength = 32
)

// Password Hashing
const (
	DefaultBcryptCost = 10
)

// User Roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)
