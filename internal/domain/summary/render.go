package summary

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"
)

var cardTemplate = template.Must(template.New("card").Parse(`<div class="widget-card" data-widget="{{.Widget}}" data-state="{{.State}}">
  <div class="card-header"><h4>{{.Title}}</h4>{{if .Subtitle}}<h6>{{.Subtitle}}</h6>{{end}}</div>
{{- if eq .State "loading"}}
  <div class="data-table-skeleton" role="progressbar"></div>
{{- else if eq .State "error"}}
  <div class="error-state" role="alert">Sorry, there was a problem displaying this information ({{.Error}}).</div>
{{- else if eq .State "empty"}}
  <div class="empty-state"><div class="empty-data-illustration"></div><p>{{.EmptyMessage}}</p></div>
{{- else}}
  <table aria-label="{{.Title}}" class="zebra">
    <thead><tr>{{range .Columns}}<th>{{.Header}}</th>{{end}}</tr></thead>
    <tbody>
{{- range $row := .Rows}}
      <tr data-row-id="{{$row.ID}}"{{if $row.Tag}} data-tag="{{$row.Tag}}"{{end}}>{{range $.Columns}}<td>{{index $row.Cells .Key}}</td>{{end}}</tr>
{{- end}}
    </tbody>
  </table>
{{- if and .Pagination .Pagination.ShowControl}}
  <nav class="pagination" data-page="{{.Pagination.Page}}" data-page-size="{{.Pagination.PageSize}}">Page {{.Pagination.Page}} of {{.Pagination.TotalPages}} ({{.Pagination.TotalItems}} items)</nav>
{{- end}}
{{- end}}
</div>
`))

// RenderHTML escribe el fragmento HTML de la tarjeta para embeber en el dashboard.
func RenderHTML(w io.Writer, v View) error {
	return cardTemplate.Execute(w, v)
}

// RenderText escribe la vista como tabla de texto (CLI).
func RenderText(w io.Writer, v View) error {
	if _, err := fmt.Fprintf(w, "%s [%s]\n", v.Title, v.State); err != nil {
		return err
	}
	if v.Subtitle != "" {
		fmt.Fprintln(w, v.Subtitle)
	}

	switch v.State {
	case StateError:
		_, err := fmt.Fprintf(w, "error: %s\n", v.Error)
		return err
	case StateEmpty:
		_, err := fmt.Fprintln(w, v.EmptyMessage)
		return err
	case StateLoading:
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headers := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		headers = append(headers, strings.ToUpper(c.Header))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range v.Rows {
		cells := make([]string, 0, len(v.Columns))
		for _, c := range v.Columns {
			cells = append(cells, r.Cells[c.Key])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if p := v.Pagination; p != nil && p.ShowControl {
		_, err := fmt.Fprintf(w, "page %d of %d (%d items)\n", p.Page, p.TotalPages, p.TotalItems)
		return err
	}
	return nil
}
