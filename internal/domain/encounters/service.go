package encounters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("encounter not found")
)

// Gateway es lo que el servicio necesita del backend (lo implementa openmrs.Client).
type Gateway interface {
	ListEncounters(ctx context.Context, patientUUID, encounterType string, limit int) ([]json.RawMessage, error)
	LastEncounter(ctx context.Context, patientUUID, encounterType string) (json.RawMessage, error)
	SaveEncounter(ctx context.Context, payload json.RawMessage, encounterUUID string) (json.RawMessage, error)
	DeleteEncounter(ctx context.Context, encounterUUID string) error
}

type Service struct {
	gw          Gateway
	defaultType string
}

// NewService: defaultType es el encounterType usado cuando el caller no manda uno
// (el de seguimiento, configurable).
func NewService(gw Gateway, defaultType string) *Service {
	return &Service{
		gw:          gw,
		defaultType: strings.TrimSpace(defaultType),
	}
}

func (s *Service) encounterType(t string) string {
	if t = strings.TrimSpace(t); t != "" {
		return t
	}
	return s.defaultType
}

func (s *Service) List(ctx context.Context, patientUUID, encounterType string, limit int) ([]json.RawMessage, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" || limit < 0 {
		return nil, ErrInvalidInput
	}
	return s.gw.ListEncounters(ctx, patientUUID, s.encounterType(encounterType), limit)
}

// Last devuelve el último encounter del tipo o ErrNotFound si el paciente no tiene ninguno.
func (s *Service) Last(ctx context.Context, patientUUID, encounterType string) (json.RawMessage, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrInvalidInput
	}
	enc, err := s.gw.LastEncounter(ctx, patientUUID, s.encounterType(encounterType))
	if err != nil {
		return nil, err
	}
	if len(enc) == 0 {
		return nil, ErrNotFound
	}
	return enc, nil
}

// Save crea o actualiza. payload tiene que ser un objeto JSON; se manda tal cual.
// El adapter ya loguea la falla; acá solo se propaga.
func (s *Service) Save(ctx context.Context, payload json.RawMessage, encounterUUID string) (json.RawMessage, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || payload[0] != '{' || !json.Valid(payload) {
		return nil, ErrInvalidInput
	}

	return s.gw.SaveEncounter(ctx, payload, strings.TrimSpace(encounterUUID))
}

func (s *Service) Delete(ctx context.Context, encounterUUID string) error {
	encounterUUID = strings.TrimSpace(encounterUUID)
	if encounterUUID == "" {
		return ErrInvalidInput
	}
	return s.gw.DeleteEncounter(ctx, encounterUUID)
}
