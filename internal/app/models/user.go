package models

import "time"

// Role defines the closed set of user roles.
type Role string

const (
	RoleStudent      Role = "student"
	RoleClubOfficer  Role = "club_officer"
	RoleCollegeAdmin Role = "college_admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleClubOfficer, RoleCollegeAdmin:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Username    string     `json:"username" db:"username" example:"jdoe"`
	Email       string     `json:"email" db:"email" example:"jdoe@college.edu"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name" example:"John"`
	LastName    string     `json:"lastName" db:"last_name" example:"Doe"`
	Role        Role       `json:"role" db:"role" example:"student"`
	IsStaff     bool       `json:"isStaff" db:"is_staff"`
	IsSuperuser bool       `json:"isSuperuser" db:"is_superuser"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsClubOfficer reports whether the user holds the club officer role.
func (u *User) IsClubOfficer() bool {
	return u.Role == RoleClubOfficer
}

// IsCollegeAdmin reports whether the user is a college admin. The staff and
// superuser flags also qualify, independent of the stored role.
func (u *User) IsCollegeAdmin() bool {
	return u.Role == RoleCollegeAdmin || u.IsStaff || u.IsSuperuser
}
