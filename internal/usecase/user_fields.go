package usecase

import (
	"strings"

	"swasthya-portal/internal/domain/entity"
)

// userFields is the editable part of a user. Zero values mean "keep".
type userFields struct {
	Name             string
	Email            string
	Phone            string
	Specialization   string
	Experience       int
	About            string
	LicenseNo        string
	Age              int
	BloodGroup       string
	Gender           string
	MedicalHistory   string
	Allergies        string
	EmergencyContact string
}

// applyTo merges the non-empty fields into user. Role specific fields only
// land on users of that role. Id, role, password and active are never touched.
func (f userFields) applyTo(user *entity.User) {
	setString(&user.Name, f.Name)
	setString(&user.Email, f.Email)
	setString(&user.Phone, f.Phone)

	switch user.Role {
	case entity.RoleDoctor:
		setString(&user.Specialization, f.Specialization)
		setString(&user.About, f.About)
		setString(&user.LicenseNo, f.LicenseNo)
		if f.Experience > 0 {
			user.Experience = f.Experience
		}
	case entity.RolePharmacist:
		setString(&user.LicenseNo, f.LicenseNo)
	case entity.RolePatient:
		if f.Age > 0 {
			user.Age = f.Age
		}
		setString(&user.BloodGroup, f.BloodGroup)
		setString(&user.Gender, f.Gender)
		setString(&user.MedicalHistory, f.MedicalHistory)
		setString(&user.Allergies, f.Allergies)
		setString(&user.EmergencyContact, f.EmergencyContact)
	}
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

// containsFold is the case-insensitive substring match used by every search box
func containsFold(value, query string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}
