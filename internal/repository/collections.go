package repository

import (
	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
)

func NewAppointmentRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.AppointmentRepository {
	return newCollection[entity.Appointment](store, locker, domainRepo.KeyAppointments)
}

func NewPrescriptionRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.PrescriptionRepository {
	return newCollection[entity.Prescription](store, locker, domainRepo.KeyPrescriptions)
}

func NewOrderRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.OrderRepository {
	return newCollection[entity.Order](store, locker, domainRepo.KeyOrders)
}

func NewConsultationRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.ConsultationRepository {
	return newCollection[entity.Consultation](store, locker, domainRepo.KeyConsultations)
}

func NewFeedbackRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.FeedbackRepository {
	return newCollection[entity.Feedback](store, locker, domainRepo.KeyFeedbacks)
}

func NewDocumentRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.DocumentRepository {
	return newCollection[entity.Document](store, locker, domainRepo.KeyDocuments)
}

func NewHealthReportRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.HealthReportRepository {
	return newCollection[entity.HealthReport](store, locker, domainRepo.KeyHealthReports)
}

func NewConversationNoteRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.ConversationNoteRepository {
	return newCollection[entity.ConversationNote](store, locker, domainRepo.KeyConversationNotes)
}

func NewSymptomCheckRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.SymptomCheckRepository {
	return newCollection[entity.SymptomCheck](store, locker, domainRepo.KeySymptomChecks)
}

func NewSafetyCheckRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.SafetyCheckRepository {
	return newCollection[entity.SafetyCheck](store, locker, domainRepo.KeySafetyChecks)
}

func NewMessageRepository(store domainRepo.Store, locker *KeyLocker) domainRepo.MessageRepository {
	return newCollection[entity.Message](store, locker, domainRepo.KeyMessages)
}
