package web

import (
	"html/template"
	"io"

	"github.com/airflow-ai/congestion-dashboard/internal/controller"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

var funcMap = template.FuncMap{
	// css marks a colour from the fixed palette as safe inside style
	// attributes.
	"css": func(s string) template.CSS { return template.CSS(s) },
	"generation": func(v *controller.View) uint64 {
		if v == nil {
			return 0
		}
		return v.Generation
	},
}

// PageData is what the dashboard template renders.
type PageData struct {
	Title  string
	State  controller.State
	Manual domain.ManualInput
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	t := template.Must(template.New("base").Funcs(funcMap).Parse(tmplDashboard))
	template.Must(t.Parse(tmplHeatmap))
	return &Renderer{tmpl: t}
}

func (r *Renderer) Dashboard(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Airport Congestion Dashboard"
	}
	return r.tmpl.ExecuteTemplate(w, "dashboard.html", data)
}
