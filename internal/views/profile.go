package views

import (
	"context"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Profile backs the patient profile editor: contact details and the
// medical lists (allergies, conditions, medications).
type Profile struct {
	client *api.Client
	logger *logging.Logger

	patientID string
	patient   *api.Patient
	draft     api.UpdatePatientRequest
	dirty     bool
}

// NewProfile creates the profile editor for one patient.
func NewProfile(client *api.Client, patientID string, logger *logging.Logger) *Profile {
	if logger == nil {
		logger = logging.Default()
	}
	return &Profile{client: client, patientID: patientID, logger: logger}
}

// Load fetches the patient and resets the edit draft to match.
func (p *Profile) Load(ctx context.Context) error {
	patient, err := p.client.Patients.Get(ctx, p.patientID)
	if err != nil {
		return err
	}
	p.patient = patient
	p.draft = api.UpdatePatientRequest{
		Email:       patient.Email,
		Phone:       patient.Phone,
		Address:     patient.Address,
		Allergies:   append([]string(nil), patient.Allergies...),
		Conditions:  append([]string(nil), patient.Conditions...),
		Medications: append([]string(nil), patient.Medications...),
	}
	p.dirty = false
	return nil
}

// Patient returns the last loaded record.
func (p *Profile) Patient() *api.Patient { return p.patient }

// Draft returns the current edit state.
func (p *Profile) Draft() api.UpdatePatientRequest { return p.draft }

// Dirty reports whether the draft has unsaved edits.
func (p *Profile) Dirty() bool { return p.dirty }

// SetContact updates the contact fields in the draft.
func (p *Profile) SetContact(email, phone, address string) {
	p.draft.Email = email
	p.draft.Phone = phone
	p.draft.Address = address
	p.dirty = true
}

// AddAllergy appends an allergy to the draft, ignoring duplicates.
func (p *Profile) AddAllergy(name string) {
	for _, a := range p.draft.Allergies {
		if a == name {
			return
		}
	}
	p.draft.Allergies = append(p.draft.Allergies, name)
	p.dirty = true
}

// AddMedication appends a medication to the draft, ignoring duplicates.
func (p *Profile) AddMedication(name string) {
	for _, m := range p.draft.Medications {
		if m == name {
			return
		}
	}
	p.draft.Medications = append(p.draft.Medications, name)
	p.dirty = true
}

// Save pushes the draft to the backend and reloads. The draft is
// validated client side before any request is made.
func (p *Profile) Save(ctx context.Context) error {
	if !p.dirty {
		return nil
	}
	if _, err := p.client.Patients.Update(ctx, p.patientID, p.draft); err != nil {
		return err
	}
	return p.Load(ctx)
}
