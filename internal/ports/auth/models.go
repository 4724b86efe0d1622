package auth

// Role separates shelter staff from adopting customers.
type Role string

const (
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleCustomer
}

// Claims is the authenticated actor extracted from a token.
type Claims struct {
	Username string
	Role     Role
}
