package summary

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column describe una columna de la tabla (key en Row.Cells + texto del header).
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// Row es una fila lista para mostrar. Todas las celdas tienen valor (Fallback si falta).
type Row struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
	// Tag es un token en minúsculas para estilos (p.ej. "active"). Vacío si no aplica.
	Tag string `json:"tag,omitempty"`
}

// Dataset es el resultado derivado de un fetch: filas en orden del backend.
type Dataset struct {
	Rows     []Row
	Subtitle string
}

const (
	displayDate     = "02-Jan-2006"
	displayDateTime = "02-Jan-2006, 03:04 PM"
)

var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700", // formato REST de OpenMRS
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate muestra la fecha en formato largo; si no parsea, devuelve el valor crudo.
func formatDate(s string) string {
	if s == Fallback {
		return s
	}
	t, ok := parseDate(s)
	if !ok {
		return OrFallback(s)
	}
	return t.Format(displayDate)
}

func formatDateTime(s string) string {
	if s == Fallback {
		return s
	}
	t, ok := parseDate(s)
	if !ok {
		return OrFallback(s)
	}
	return t.Format(displayDateTime)
}

// HumanizeStatus: "ON_HOLD" -> "On Hold".
func HumanizeStatus(s string) string {
	words := statusWords(s)
	if len(words) == 0 {
		return Fallback
	}
	// cases.Caser no es seguro entre goroutines; uno por llamada.
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// StatusTag: "ON_HOLD" -> "on-hold". Vacío si no hay status.
func StatusTag(s string) string {
	return strings.Join(statusWords(s), "-")
}

func statusWords(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == Fallback {
		return nil
	}
	s = strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(s))
	return strings.Fields(s)
}

// rowIDs asigna IDs únicos: uuid del backend, o el índice si falta.
type rowIDs struct {
	seen map[string]bool
}

func (r *rowIDs) next(uuid string, index int) string {
	if r.seen == nil {
		r.seen = map[string]bool{}
	}
	id := strings.TrimSpace(uuid)
	if id == "" || id == Fallback {
		id = strconv.Itoa(index)
	}
	if r.seen[id] {
		id = id + "-" + strconv.Itoa(index)
	}
	r.seen[id] = true
	return id
}

func ConditionRows(records []ConditionRecord) Dataset {
	rows := make([]Row, 0, len(records))
	ids := rowIDs{}
	for i, rec := range records {
		rec = rec.Normalized()
		rows = append(rows, Row{
			ID: ids.next(rec.UUID, i),
			Cells: map[string]string{
				"name":      rec.Name,
				"onSetDate": formatDate(rec.OnSetDate),
				"status":    HumanizeStatus(rec.Status),
			},
			Tag: StatusTag(rec.Status),
		})
	}
	return Dataset{Rows: rows}
}

func MedicationRows(records []MedicationRecord) Dataset {
	rows := make([]Row, 0, len(records))
	ids := rowIDs{}
	for i, rec := range records {
		rec = rec.Normalized()
		rows = append(rows, Row{
			ID: ids.next(rec.UUID, i),
			Cells: map[string]string{
				"regimen":    rec.Regimen,
				"dateActive": formatDate(rec.DateActive),
			},
		})
	}
	return Dataset{Rows: rows}
}

// HistoryRows además arma el subtítulo con la fecha de visita del primer registro.
func HistoryRows(records []HistoryRecord) Dataset {
	rows := make([]Row, 0, len(records))
	ids := rowIDs{}
	for i, rec := range records {
		rec = rec.Normalized()
		rows = append(rows, Row{
			ID: ids.next(rec.UUID, i),
			Cells: map[string]string{
				"observation": rec.Observation,
				"value":       rec.Value,
			},
		})
	}

	ds := Dataset{Rows: rows}
	if len(records) > 0 {
		if vd := records[0].Normalized().VisitDate; vd != Fallback {
			ds.Subtitle = "Visit Date: " + formatDateTime(vd)
		}
	}
	return ds
}
