package backend

// Backend endpoint paths
const (
	PathLogin              = "/auth/login"
	PathRegister           = "/auth/register"
	PathAuthURL            = "/auth/url"
	PathToken              = "/auth/token"
	PathUserInfo           = "/auth/user-info"
	PathLogout             = "/auth/logout"
	PathUpdateCustomerInfo = "/api/customers/update-info/"
)
