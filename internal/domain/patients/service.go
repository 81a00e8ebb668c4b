package patients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
)

type Gateway interface {
	GetPatientInfo(ctx context.Context, patientUUID string) (json.RawMessage, error)
	ListLocations(ctx context.Context) ([]Location, error)
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Get devuelve el paciente completo (v=full) sin reinterpretarlo.
func (s *Service) Get(ctx context.Context, patientUUID string) (json.RawMessage, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrInvalidInput
	}
	raw, err := s.gw.GetPatientInfo(ctx, patientUUID)
	if err != nil {
		return nil, err
	}
	if b := bytes.TrimSpace(raw); len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, ErrNotFound
	}
	return raw, nil
}

// Locations devuelve los lugares ordenados como los manda el backend; omite
// entradas sin uuid.
func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	locs, err := s.gw.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		if strings.TrimSpace(l.UUID) == "" {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
