package user

// Role is a named permission group. Roles form a total order and a user's
// effective level is the highest level among the roles they hold.
type Role string

const (
	RoleTech         Role = "Tech"
	RoleLead         Role = "Lead"
	RolePhoneAnalyst Role = "Phone Analyst"
	RoleManager      Role = "Manager"
)

var roleLevels = map[Role]int{
	RoleTech:         1,
	RoleLead:         2,
	RolePhoneAnalyst: 3,
	RoleManager:      4,
}

// Level returns the hierarchy level for the role, 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}
