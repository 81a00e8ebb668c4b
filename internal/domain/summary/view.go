package summary

import (
	"context"
	"errors"
)

type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	// StateEmpty es un success sin filas: se muestra el mensaje vacío, no la tabla.
	StateEmpty State = "empty"
	StateError State = "error"
)

type PageInfo struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	PageSizes   []int `json:"page_sizes"`
	TotalItems  int   `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	ShowControl bool  `json:"show_control"`
}

// View es lo que se renderiza: estado + página actual de filas.
type View struct {
	InstanceID   string    `json:"instance_id,omitempty"`
	Widget       string    `json:"widget"`
	Title        string    `json:"title"`
	PatientUUID  string    `json:"patient_uuid"`
	State        State     `json:"state"`
	Error        string    `json:"error,omitempty"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Columns      []Column  `json:"columns"`
	Rows         []Row     `json:"rows"`
	Pagination   *PageInfo `json:"pagination,omitempty"`
	EmptyMessage string    `json:"empty_message,omitempty"`
}

// FailureReason traduce un error de carga a un texto corto apto para el usuario
// (sin body del upstream).
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkFailure):
		return ErrNetworkFailure.Error()
	case errors.Is(err, ErrMalformedResult):
		return ErrMalformedResult.Error()
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request canceled"
	default:
		return "internal error"
	}
}

func buildView(def Definition, patientUUID string, status State, data Dataset, err error, pager Pager) View {
	v := View{
		Widget:      def.Name,
		Title:       def.Title,
		PatientUUID: patientUUID,
		State:       status,
		Columns:     def.Columns,
		Rows:        []Row{},
	}

	switch status {
	case StateError:
		v.Error = FailureReason(err)
	case StateSuccess:
		total := len(data.Rows)
		if total == 0 {
			v.State = StateEmpty
			v.EmptyMessage = def.EmptyMessage
			return v
		}
		v.Subtitle = data.Subtitle
		v.Rows = Paginate(data.Rows, pager.Page(), pager.PageSize())
		v.Pagination = &PageInfo{
			Page:        pager.Page(),
			PageSize:    pager.PageSize(),
			PageSizes:   PageSizes,
			TotalItems:  total,
			TotalPages:  pager.TotalPages(total),
			ShowControl: pager.ShowControl(total),
		}
	}
	return v
}
