package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
)

const appointmentLayout = "2006-01-02 15:04"

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotScheduled = errors.New("only scheduled appointments can be changed")
	ErrInvalidDateTime         = errors.New("invalid date or time, use YYYY-MM-DD and HH:MM")
	ErrDoctorNotFound          = errors.New("doctor not found")
	ErrPatientNotFound         = errors.New("patient not found")
)

func parseAppointmentTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(appointmentLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}

// findUserWithRole returns the user only when it exists and has role
func findUserWithRole(ctx context.Context, userRepo repository.UserRepository, id string, role entity.Role) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != role {
		return nil, nil
	}
	return user, nil
}

// transitionAppointment applies change to a scheduled appointment accepted by
// owns. Appointments of other users read as not found.
func transitionAppointment(
	ctx context.Context,
	repo repository.AppointmentRepository,
	id string,
	owns func(*entity.Appointment) bool,
	change func(*entity.Appointment, time.Time),
) (*entity.Appointment, error) {
	updated, err := repo.Update(ctx, id, func(a *entity.Appointment) error {
		if !owns(a) {
			return ErrAppointmentNotFound
		}
		if !a.IsScheduled() {
			return ErrAppointmentNotScheduled
		}
		change(a, time.Now())
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAppointmentNotFound
	}
	return updated, err
}

func sortAppointments(appointments []entity.Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].DateTime.Before(appointments[j].DateTime)
	})
}

func filterAppointments(appointments []entity.Appointment, keep func(*entity.Appointment) bool) []entity.Appointment {
	out := make([]entity.Appointment, 0, len(appointments))
	for i := range appointments {
		if keep(&appointments[i]) {
			out = append(out, appointments[i])
		}
	}
	return out
}
