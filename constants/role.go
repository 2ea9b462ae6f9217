package constants

const (
	ROLE_USER        = "user"
	ROLE_ADMIN       = "admin"
	ROLE_SUPER_ADMIN = "superAdmin"
)

// Cookie names, one per authentication tier.
const (
	COOKIE_TOKEN             = "token"
	COOKIE_ADMIN_TOKEN       = "adminToken"
	COOKIE_SUPER_ADMIN_TOKEN = "superAdminToken"
)

type Tier int

const (
	TIER_USER Tier = iota
	TIER_ADMIN
	TIER_SUPER_ADMIN
)
