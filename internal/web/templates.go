package web

import (
	"html/template"
	"io/fs"
	"net/http"
)

// Templates holds two parsed bases: the public site layout and the admin
// panel layout. Pages are parsed on top of a clone per render so each page
// can define its own "content" block.
type Templates struct {
	fs    fs.FS
	base  *template.Template
	admin *template.Template
}

func NewTemplates(fsys fs.FS) (*Templates, error) {
	base, err := template.ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	admin, err := template.ParseFS(fsys, "templates/admin_layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{fs: fsys, base: base, admin: admin}, nil
}

func (t *Templates) Render(w http.ResponseWriter, name string, data any) error {
	return t.render(w, t.base, name, data)
}

func (t *Templates) RenderAdmin(w http.ResponseWriter, name string, data any) error {
	return t.render(w, t.admin, name, data)
}

func (t *Templates) render(w http.ResponseWriter, base *template.Template, name string, data any) error {
	tmpl, err := base.Clone()
	if err != nil {
		return err
	}
	if _, err := tmpl.ParseFS(t.fs, "templates/"+name); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "layout", data)
}
