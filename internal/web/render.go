package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/storage"
)

type pageData map[string]interface{}

// data дополняет значения страницы общими для всех шаблонов
func (s *Server) data(r *http.Request, values pageData) pageData {
	d := pageData{
		"Viewer": viewerFrom(r),
		"Errors": forms.FieldErrors{},
		"Path":   r.URL.Path,
	}
	for k, v := range values {
		d[k] = v
	}
	return d
}

func (s *Server) renderBytes(name string, data pageData) ([]byte, error) {
	tmpl, ok := s.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	body, err := s.renderBytes(name, data)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	write(w, status, body)
}

func write(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// fail переводит ошибку в ответ: 404, вход или 500
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.notFound(w, r)
	case errors.Is(err, auth.ErrUnauthenticated):
		http.Redirect(w, r, auth.LoginRedirectURL(r.URL.RequestURI()), http.StatusFound)
	default:
		s.serverError(w, r, err)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "404.html", s.data(r, nil))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.RequestURI(),
	}).Error("internal server error")

	body, rerr := s.renderBytes("500.html", s.data(r, nil))
	if rerr != nil {
		s.log.WithError(rerr).Error("could not render error page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	write(w, http.StatusInternalServerError, body)
}
