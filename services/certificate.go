package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"eduquest/models"
)

// ErrNotEligible is returned when a certificate is requested for a course
// the user has not fully completed.
var ErrNotEligible = errors.New("course not completed")

// Certificate is the completion certificate view shown to the student. It is
// derived on demand, not persisted.
type Certificate struct {
	Serial      string `json:"serial"`
	Student     string `json:"student"`
	CourseTitle string `json:"courseTitle"`
	IssuedOn    string `json:"issuedOn"`
}

// CertificateService issues completion certificates. Now is swappable so
// tests can pin the issue date.
type CertificateService struct {
	Now func() time.Time
}

func NewCertificateService() *CertificateService {
	return &CertificateService{Now: time.Now}
}

// Issue builds a certificate for a completed course, or ErrNotEligible.
// Eligibility is the pure derivation on the progress record: every lesson
// complete and at least one lesson to complete.
func (cs *CertificateService) Issue(sess models.Session, course models.Course, progress models.Progress) (Certificate, error) {
	if !progress.CertificateEligible() {
		return Certificate{}, ErrNotEligible
	}
	return Certificate{
		Serial:      uuid.NewString(),
		Student:     sess.DisplayName(),
		CourseTitle: course.Title,
		IssuedOn:    cs.Now().Format("2006-01-02"),
	}, nil
}
