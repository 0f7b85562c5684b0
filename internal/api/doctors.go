package api

import (
	"context"
	"fmt"
	"net/url"
)

// DoctorsService is the doctors resource group.
type DoctorsService struct {
	c *Client
}

// List returns all doctors.
// GET /api/doctors
func (s *DoctorsService) List(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := s.c.get(ctx, "/api/doctors", nil, &out, "doctors"); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one doctor, availability included.
// GET /api/doctors/{id}
func (s *DoctorsService) Get(ctx context.Context, id string) (*Doctor, error) {
	out := new(Doctor)
	if err := s.c.get(ctx, "/api/doctors/"+url.PathEscape(id), nil, out, "doctors"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAvailability replaces a doctor's weekly availability map.
// Windows must already be validated and non-overlapping; the schedule
// package owns that check.
// PUT /api/doctors/{id}/availability
func (s *DoctorsService) UpdateAvailability(ctx context.Context, id string, availability map[string][]AvailabilityWindow) (*Doctor, error) {
	if id == "" {
		return nil, fmt.Errorf("api: doctor id is required")
	}
	body := map[string]any{"availability": availability}
	out := new(Doctor)
	if err := s.c.put(ctx, "/api/doctors/"+url.PathEscape(id)+"/availability", body, out, "doctors"); err != nil {
		return nil, err
	}
	return out, nil
}
