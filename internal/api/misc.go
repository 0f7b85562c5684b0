package api

import (
	"context"
	"net/url"
)

// StaffService is the staff resource group.
type StaffService struct {
	c *Client
}

// List returns all staff members.
// GET /api/staff
func (s *StaffService) List(ctx context.Context) ([]StaffMember, error) {
	var out []StaffMember
	if err := s.c.get(ctx, "/api/staff", nil, &out, "staff"); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one staff member.
// GET /api/staff/{id}
func (s *StaffService) Get(ctx context.Context, id string) (*StaffMember, error) {
	out := new(StaffMember)
	if err := s.c.get(ctx, "/api/staff/"+url.PathEscape(id), nil, out, "staff"); err != nil {
		return nil, err
	}
	return out, nil
}

// DocumentsService is the documents resource group.
type DocumentsService struct {
	c *Client
}

// ListByPatient returns a patient's document metadata.
// GET /api/documents?patient_id={id}
func (s *DocumentsService) ListByPatient(ctx context.Context, patientID string) ([]Document, error) {
	q := url.Values{}
	q.Set("patient_id", patientID)
	var out []Document
	if err := s.c.get(ctx, "/api/documents", q, &out, "documents"); err != nil {
		return nil, err
	}
	return out, nil
}

// MedicalHistoryService is the medical-history resource group.
type MedicalHistoryService struct {
	c *Client
}

// ForPatient returns a patient's history entries, newest first.
// GET /api/medical-history/{patientID}
func (s *MedicalHistoryService) ForPatient(ctx context.Context, patientID string) ([]MedicalHistoryEntry, error) {
	var out []MedicalHistoryEntry
	if err := s.c.get(ctx, "/api/medical-history/"+url.PathEscape(patientID), nil, &out, "medical-history"); err != nil {
		return nil, err
	}
	return out, nil
}

// Add appends a history entry.
// POST /api/medical-history/{patientID}
func (s *MedicalHistoryService) Add(ctx context.Context, patientID string, entry MedicalHistoryEntry) (*MedicalHistoryEntry, error) {
	out := new(MedicalHistoryEntry)
	if err := s.c.post(ctx, "/api/medical-history/"+url.PathEscape(patientID), entry, out, "medical-history"); err != nil {
		return nil, err
	}
	return out, nil
}

// ClinicService is the clinic resource group.
type ClinicService struct {
	c *Client
}

// Info returns the clinic profile.
// GET /api/clinic
func (s *ClinicService) Info(ctx context.Context) (*ClinicInfo, error) {
	out := new(ClinicInfo)
	if err := s.c.get(ctx, "/api/clinic", nil, out, "clinic"); err != nil {
		return nil, err
	}
	return out, nil
}
