package api

import (
	"context"
	"fmt"
	"net/url"
)

// PatientsService is the patients resource group.
type PatientsService struct {
	c *Client
}

// UpdatePatientRequest carries the editable profile and medical fields.
type UpdatePatientRequest struct {
	Email       string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
	Medications []string `json:"medications,omitempty"`
}

// List returns all patients (staff/doctor view).
// GET /api/patients
func (s *PatientsService) List(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := s.c.get(ctx, "/api/patients", nil, &out, "patients"); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one patient.
// GET /api/patients/{id}
func (s *PatientsService) Get(ctx context.Context, id string) (*Patient, error) {
	out := new(Patient)
	if err := s.c.get(ctx, "/api/patients/"+url.PathEscape(id), nil, out, "patients"); err != nil {
		return nil, err
	}
	return out, nil
}

// Update edits a patient's profile.
// PUT /api/patients/{id}
func (s *PatientsService) Update(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("api: invalid patient update: %w", err)
	}
	out := new(Patient)
	if err := s.c.put(ctx, "/api/patients/"+url.PathEscape(id), req, out, "patients"); err != nil {
		return nil, err
	}
	return out, nil
}
