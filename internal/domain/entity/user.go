package entity

import "time"

// User is a portal account. Role specific fields are optional and only
// populated for the matching role.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Active   bool   `json:"active"`

	// Doctor
	Specialization string `json:"specialization,omitempty"`
	Experience     int    `json:"experience,omitempty"`
	About          string `json:"about,omitempty"`

	// Doctor / pharmacist
	LicenseNo string `json:"licenseNo,omitempty"`

	// Patient
	Age              int    `json:"age,omitempty"`
	BloodGroup       string `json:"bloodGroup,omitempty"`
	Gender           string `json:"gender,omitempty"`
	MedicalHistory   string `json:"medicalHistory,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (u User) GetID() string { return u.ID }

// WithoutPassword returns a copy of the user safe to hand out as a session
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// Session is the authenticated context passed into every usecase call.
type Session struct {
	User       User      `json:"user"`
	TokenID    string    `json:"tokenId"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

func (s *Session) UserID() string { return s.User.ID }

func (s *Session) Role() Role { return s.User.Role }

// HasRole reports whether the session role is in roles
func (s *Session) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if s.User.Role == r {
			return true
		}
	}
	return false
}
