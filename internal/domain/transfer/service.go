// Package transfer drives the end-to-end migration of one clinic tenant's
// records into another: read every patient's sub-resources from the source,
// remap staff identities, and write the transformed records to the
// destination.
package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/apothedoc/clinic-transfer/internal/domain/caresession"
	"github.com/apothedoc/clinic-transfer/internal/domain/chart"
	"github.com/apothedoc/clinic-transfer/internal/domain/enrollment"
	"github.com/apothedoc/clinic-transfer/internal/domain/identity"
	"github.com/apothedoc/clinic-transfer/internal/domain/patient"
	"github.com/apothedoc/clinic-transfer/pkg/pagination"
)

// Repos groups one tenant's repositories.
type Repos struct {
	Patients    patient.Repository
	Sessions    caresession.Repository
	Enrollments enrollment.Repository
	Chart       chart.Repository
}

// Deps wires a Service. Mapping tables are read-only for the run.
type Deps struct {
	Source            Repos
	Destination       Repos
	DestinationRoster identity.RosterRepository
	ProviderMappings  []identity.IDMapping
	UserMappings      []identity.IDMapping
	SkipCareSessions  bool
	Logger            zerolog.Logger
}

// Service is the transfer orchestrator. Execution is single-threaded and
// strictly sequential: one network call outstanding at a time, patients in
// roster order, all reads for the run completed before the first write.
type Service struct {
	source     Repos
	dest       Repos
	destRoster identity.RosterRepository

	providerMappings []identity.IDMapping
	userMappings     []identity.IDMapping
	skipCareSessions bool
	log              zerolog.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		source:           d.Source,
		dest:             d.Destination,
		destRoster:       d.DestinationRoster,
		providerMappings: d.ProviderMappings,
		userMappings:     d.UserMappings,
		skipCareSessions: d.SkipCareSessions,
		log:              d.Logger,
	}
}

// PatientRecord aggregates one source patient with every sub-resource
// fetched for it. A sub-resource whose fetch failed holds its zero value;
// enrollment details are present only when their fetch succeeded.
type PatientRecord struct {
	Patient            patient.Patient
	Details            *patient.Details
	CareSessions       []caresession.CareSession
	EnrollmentStatus   enrollment.Status
	Enrollments        map[string]*enrollment.Enrollment
	AllergyMedication  *chart.AllergyMedication
	EmergencyContacts  []chart.EmergencyContact
	ContactInformation *chart.ContactInformation
}

// Run executes one transfer pass. Only a roster-phase failure aborts the
// run; every per-patient and per-sub-resource failure is logged and
// isolated.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info().Msg("starting clinic data transfer")

	// Roster phase. Everything downstream depends on these, so any failure
	// here is fatal.
	sourcePatients, err := s.source.Patients.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch source patient list: %w", err)
	}
	destPatients, err := s.dest.Patients.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch destination patient list: %w", err)
	}
	destProviders, err := s.destRoster.Providers(ctx)
	if err != nil {
		return fmt.Errorf("fetch destination provider list: %w", err)
	}
	destUsers, err := s.destRoster.Users(ctx)
	if err != nil {
		return fmt.Errorf("fetch destination user list: %w", err)
	}
	resolver := identity.NewResolver(s.providerMappings, s.userMappings, destProviders, destUsers, s.log)

	s.log.Info().
		Int("source_patients", len(sourcePatients)).
		Int("destination_patients", len(destPatients)).
		Int("destination_providers", len(destProviders)).
		Int("destination_users", len(destUsers)).
		Msg("rosters loaded, reading patient records from source clinic")

	// Read phase: assemble every patient's record before writing anything.
	records := make([]PatientRecord, 0, len(sourcePatients))
	for _, p := range sourcePatients {
		records = append(records, s.readPatient(ctx, p))
	}

	sessionCount, enrollmentCount := 0, 0
	for _, rec := range records {
		sessionCount += len(rec.CareSessions)
		enrollmentCount += rec.EnrollmentStatus.Count()
	}
	s.log.Info().
		Int("patients", len(records)).
		Int("care_sessions", sessionCount).
		Int("unique_enrollments", enrollmentCount).
		Msg("source clinic read complete, posting to destination clinic")

	// Write phase, in roster order.
	var stats runStats
	for _, rec := range records {
		s.writeRecord(ctx, rec, destPatients, resolver, &stats)
	}

	s.log.Info().
		Int("patients_created", stats.patientsCreated).
		Int("patients_matched", stats.patientsMatched).
		Int("enrollments_posted", stats.enrollmentsPosted).
		Int("care_sessions_posted", stats.sessionsPosted).
		Msg("transfer complete")
	return nil
}

type runStats struct {
	patientsCreated   int
	patientsMatched   int
	enrollmentsPosted int
	sessionsPosted    int
}

// readPatient fetches every sub-resource for one source patient. Each fetch
// fails soft: the field keeps its zero value, a warning is logged, and the
// remaining fetches still run.
func (s *Service) readPatient(ctx context.Context, p patient.Patient) PatientRecord {
	rec := PatientRecord{Patient: p, Enrollments: map[string]*enrollment.Enrollment{}}
	if p.ID == nil {
		s.log.Warn().Str("mrn", p.MRN).Msg("source patient has no id, skipping sub-resource reads")
		return rec
	}
	pid := *p.ID
	plog := s.log.With().Int("patient_id", pid).Str("mrn", p.MRN).Logger()

	if !s.skipCareSessions {
		sessions, err := pagination.Collect(ctx, func(ctx context.Context, page int) ([]caresession.CareSession, int, error) {
			return s.source.Sessions.Page(ctx, pid, page)
		})
		if err != nil {
			plog.Warn().Err(err).Msg("unable to retrieve care sessions, skipping care session transfer for patient")
		} else {
			rec.CareSessions = sessions
		}
	}

	status, err := s.source.Enrollments.Status(ctx, pid)
	if err != nil {
		plog.Warn().Err(err).Msg("unable to retrieve enrollment status, treating patient as unenrolled")
	}
	rec.EnrollmentStatus = status

	for _, careType := range status.Active() {
		detail, err := s.source.Enrollments.Details(ctx, pid, careType)
		if err != nil {
			plog.Warn().Err(err).Str("care_type", careType).Msg("unable to retrieve enrollment details, skipping enrollment")
			continue
		}
		rec.Enrollments[careType] = detail
	}

	if am, err := s.source.Chart.AllergyMedication(ctx, pid); err != nil {
		plog.Warn().Err(err).Msg("unable to retrieve allergy medication record")
	} else {
		rec.AllergyMedication = am
	}
	if contacts, err := s.source.Chart.EmergencyContacts(ctx, pid); err != nil {
		plog.Warn().Err(err).Msg("unable to retrieve emergency contacts")
	} else {
		rec.EmergencyContacts = contacts
	}
	if ci, err := s.source.Chart.ContactInformation(ctx, pid); err != nil {
		plog.Warn().Err(err).Msg("unable to retrieve contact information")
	} else {
		rec.ContactInformation = ci
	}
	if details, err := s.source.Patients.Details(ctx, pid); err != nil {
		plog.Warn().Err(err).Msg("unable to retrieve patient details")
	} else {
		rec.Details = details
	}

	return rec
}

// writeRecord posts one patient and its sub-resources to the destination.
// Sub-resource writes are independent; a failed one is logged and the rest
// proceed. When the patient id cannot be resolved at all, the sub-resource
// writes are still attempted and fail at the API boundary, which keeps the
// failure visible in the logs without aborting the run.
func (s *Service) writeRecord(ctx context.Context, rec PatientRecord, destPatients []patient.Patient, resolver *identity.Resolver, stats *runStats) {
	plog := s.log.With().Str("mrn", rec.Patient.MRN).Logger()

	destID, err := s.dest.Patients.Create(ctx, rec.Patient)
	switch {
	case err == nil:
		stats.patientsCreated++
	case errors.Is(err, patient.ErrConflict):
		plog.Warn().Msg("patient with same MRN already exists in destination clinic, reusing existing record")
		if existing := patient.FindByMRN(destPatients, rec.Patient.MRN); existing != nil && existing.ID != nil {
			destID = *existing.ID
			stats.patientsMatched++
		} else {
			plog.Error().Msg("conflicting MRN not found in destination roster, destination patient id unresolved")
		}
	default:
		plog.Error().Err(err).Msg("failed to create patient in destination clinic")
	}

	for _, careType := range enrollment.CareTypes {
		detail, ok := rec.Enrollments[careType]
		if !ok || detail == nil {
			continue
		}
		e := s.resolveEnrollment(*detail, resolver)
		if err := s.dest.Enrollments.Create(ctx, destID, careType, e); err != nil {
			plog.Error().Err(err).Str("care_type", careType).Msg("failed to post enrollment")
			continue
		}
		stats.enrollmentsPosted++
	}

	if rec.AllergyMedication != nil {
		if err := s.dest.Chart.CreateAllergyMedication(ctx, destID, *rec.AllergyMedication); err != nil {
			plog.Error().Err(err).Msg("failed to post allergy medication record")
		}
	}
	if len(rec.EmergencyContacts) > 0 {
		if err := s.dest.Chart.CreateEmergencyContacts(ctx, destID, rec.EmergencyContacts); err != nil {
			plog.Error().Err(err).Msg("failed to post emergency contacts")
		}
	}
	if rec.ContactInformation != nil {
		if err := s.dest.Chart.CreateContactInformation(ctx, destID, *rec.ContactInformation); err != nil {
			plog.Error().Err(err).Msg("failed to post contact information")
		}
	}
	if rec.Details != nil {
		if err := s.dest.Patients.CreateDetails(ctx, destID, *rec.Details); err != nil {
			plog.Error().Err(err).Msg("failed to post patient details")
		}
	}

	for _, session := range rec.CareSessions {
		session.PerformedBy = resolver.Provider(session.PerformedBy)
		session.SubmittedBy = resolver.User(session.SubmittedBy)
		if err := s.dest.Sessions.Create(ctx, destID, session.ForDestination()); err != nil {
			plog.Error().Err(err).Msg("failed to post care session")
			continue
		}
		stats.sessionsPosted++
	}
}

// resolveEnrollment rewrites an enrollment's identity references into the
// destination namespace. Both clinician fields are provider references.
func (s *Service) resolveEnrollment(e enrollment.Enrollment, resolver *identity.Resolver) enrollment.Enrollment {
	e.PrimaryClinician = resolver.Provider(e.PrimaryClinician)
	e.Specialist = resolver.Provider(e.Specialist)
	return e
}
