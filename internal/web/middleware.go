package web

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/model"
)

type contextKey string

const viewerKey = contextKey("viewer")

// logRequests пишет по одной записи на запрос
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.RequestURI(),
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}
		if id, err := auth.GetUserIDFromContext(r.Context()); err == nil {
			fields["viewer_id"] = id
		}
		s.log.WithFields(fields).Info("request")
	})
}

// recoverer превращает панику обработчика в страницу 500
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.log.WithField("stack", string(debug.Stack())).Debug("handler panicked")
			s.serverError(w, r, fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}

// loadViewer кладет в контекст пользователя из токена сессии
func (s *Server) loadViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := s.svc.Viewer(r.Context())
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		if viewer != nil {
			r = r.WithContext(context.WithValue(r.Context(), viewerKey, viewer))
		} else {
			// токен пользователя, которого больше нет, не должен проходить LoginRequired
			r = r.WithContext(auth.WithoutUserID(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

func viewerFrom(r *http.Request) *model.User {
	viewer, _ := r.Context().Value(viewerKey).(*model.User)
	return viewer
}

// cacheKey различает зрителей: в странице зашита навигация текущего пользователя
func cacheKey(r *http.Request) string {
	viewer := "anonymous"
	if v := viewerFrom(r); v != nil {
		viewer = strconv.FormatUint(uint64(v.ID), 10)
	}
	return r.URL.RequestURI() + "|" + viewer
}
