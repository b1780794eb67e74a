package user

import "time"

// User is an authenticated account with zero or more role memberships.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// HighestLevel returns the user's effective permission level: the maximum
// level among held roles, 0 if the user holds none.
func (u *User) HighestLevel() int {
	max := 0
	for _, r := range u.Roles {
		if lvl := r.Level(); lvl > max {
			max = lvl
		}
	}
	return max
}

// AtLeast reports whether the user's effective level meets the minimum role.
func (u *User) AtLeast(min Role) bool {
	return u.HighestLevel() >= min.Level()
}

// HasRole reports exact membership in a role. Authorization decisions should
// use AtLeast; exact membership only matters for display.
func (u *User) HasRole(r Role) bool {
	for _, held := range u.Roles {
		if held == r {
			return true
		}
	}
	return false
}

// FullName returns the user's display name, falling back to the username.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}
