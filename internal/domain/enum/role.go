package enum

// Role is one of the six fixed staff roles. It is stored as a plain string
// and carried in the JWT; the workflow table decides what each role may do.
type Role string

const (
	RoleSalesman        Role = "salesman"
	RoleSalesManager    Role = "sales-manager"
	RoleSalesAuthorizer Role = "sales-authorizer"
	RolePlantHead       Role = "plant-head"
	RoleAccountant      Role = "accountant"
	RoleAdmin           Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{
	RoleSalesman,
	RoleSalesManager,
	RoleSalesAuthorizer,
	RolePlantHead,
	RoleAccountant,
	RoleAdmin,
}

// Valid reports whether r is one of the six known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
