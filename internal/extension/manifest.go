package extension

import (
	"patient-summary/internal/domain/summary"
)

const (
	ModuleName  = "@openmrs/esm-ethio-summary"
	FeatureName = "ethio-summary"

	encountersModule  = "@openmrs/esm-patient-encounters-app"
	encountersFeature = "encounters"
)

type LifecycleKind string

const (
	LifecycleSync  LifecycleKind = "sync"
	LifecycleAsync LifecycleKind = "async"
)

type Lifecycle struct {
	Name        string        `json:"name"`
	Kind        LifecycleKind `json:"kind"`
	FeatureName string        `json:"feature_name"`
	ModuleName  string        `json:"module_name"`
	// Widget es el widget de resumen que respalda la extensión, si hay uno.
	Widget string `json:"widget,omitempty"`
}

type DashboardLink struct {
	Name       string `json:"name"`
	Slot       string `json:"slot"`
	Title      string `json:"title"`
	Path       string `json:"path"`
	ModuleName string `json:"module_name"`
}

// ConfigOption describe una opción reconocida del módulo con su default.
type ConfigOption struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Default     any    `json:"default"`
	Description string `json:"description"`
}

type Manifest struct {
	ModuleName    string         `json:"module_name"`
	FeatureName   string         `json:"feature_name"`
	ConfigSchema  []ConfigOption `json:"config_schema"`
	DashboardLink DashboardLink  `json:"dashboard_link"`
	Lifecycles    []Lifecycle    `json:"lifecycles"`
}

// Settings son los valores efectivos que se publican como default del schema.
type Settings struct {
	DefaultPageSize           int
	EncounterRepresentation   string
	FollowupEncounterTypeUUID string
}

// Build arma el manifest. Las extensiones sync salen de las definiciones de
// widgets registradas, en el mismo orden.
func Build(defs []summary.Definition, s Settings) Manifest {
	pageSize := s.DefaultPageSize
	if pageSize <= 0 {
		pageSize = summary.DefaultPageSize
	}

	m := Manifest{
		ModuleName:  ModuleName,
		FeatureName: FeatureName,
		ConfigSchema: []ConfigOption{
			{
				Key:         "defaultPageSize",
				Type:        "number",
				Default:     pageSize,
				Description: "Filas por página al montar un widget",
			},
			{
				Key:         "pageSizes",
				Type:        "array",
				Default:     summary.PageSizes,
				Description: "Tamaños ofrecidos por el control de paginación",
			},
			{
				Key:         "encounterRepresentation",
				Type:        "string",
				Default:     s.EncounterRepresentation,
				Description: "Representación REST usada para leer y guardar encounters",
			},
			{
				Key:         "followupEncounterTypeUuid",
				Type:        "string",
				Default:     s.FollowupEncounterTypeUUID,
				Description: "encounterType por defecto para listar encounters",
			},
		},
		DashboardLink: DashboardLink{
			Name:       "ethio-summary-dashboard",
			Slot:       "ethio-summary-dashboard-slot",
			Title:      "Ethio Summary",
			Path:       "ethio-summary",
			ModuleName: ModuleName,
		},
	}

	m.Lifecycles = append(m.Lifecycles, Lifecycle{
		Name: "root", Kind: LifecycleAsync, FeatureName: FeatureName, ModuleName: ModuleName,
	})
	for _, d := range defs {
		if d.Extension == "" {
			continue
		}
		m.Lifecycles = append(m.Lifecycles, Lifecycle{
			Name:        d.Extension,
			Kind:        LifecycleSync,
			FeatureName: FeatureName,
			ModuleName:  ModuleName,
			Widget:      d.Name,
		})
	}
	m.Lifecycles = append(m.Lifecycles,
		Lifecycle{Name: "ethioSummaryDashboardLink", Kind: LifecycleSync, FeatureName: FeatureName, ModuleName: ModuleName},
		Lifecycle{Name: "encounterDeleteConfirmationDialog", Kind: LifecycleAsync, FeatureName: encountersFeature, ModuleName: encountersModule},
	)
	return m
}

// Lifecycle busca una entrada por nombre.
func (m Manifest) Lifecycle(name string) (Lifecycle, bool) {
	for _, l := range m.Lifecycles {
		if l.Name == name {
			return l, true
		}
	}
	return Lifecycle{}, false
}
