package user

// Application roles.
const (
	RoleAdmin         = "Admin"
	RoleHospitalStaff = "HospitalStaff"
	RoleDonor         = "Donor"
)

// User is an account row. The password hash never serializes into a
// response.
type User struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	HospitalID   *int64 `json:"hospitalId,omitempty"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHospitalStaff, RoleDonor:
		return true
	}
	return false
}
