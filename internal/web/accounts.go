package web

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/service"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", s.data(r, pageData{
		"Next":     r.URL.Query().Get("next"),
		"Username": "",
	}))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, err)
		return
	}
	username := r.PostFormValue("username")
	next := r.PostFormValue("next")

	_, token, err := s.svc.Login(username, r.PostFormValue("password"))
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		s.render(w, r, http.StatusOK, "login.html", s.data(r, pageData{
			"Next":     next,
			"Username": username,
			"Errors":   verr.Fields,
		}))
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, auth.SafeNext(next), http.StatusFound)
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "signup.html", s.data(r, pageData{"Form": forms.SignupInput{}}))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.fail(w, r, err)
		return
	}
	in := forms.SignupInput{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password1"),
		Password2: r.PostFormValue("password2"),
	}

	_, err := s.svc.Signup(in)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		// пароли обратно в форму не отдаем
		in.Password, in.Password2 = "", ""
		s.render(w, r, http.StatusOK, "signup.html", s.data(r, pageData{
			"Form":   in,
			"Errors": verr.Fields,
		}))
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, auth.LoginURL, http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
