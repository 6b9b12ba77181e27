// Package web отдает ленты и формы Yatube как HTML-страницы.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/feed"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// страницы, которые рисуются поверх base.html
var pageNames = []string{
	"index.html",
	"group.html",
	"profile.html",
	"follow.html",
	"post.html",
	"post_form.html",
	"login.html",
	"signup.html",
	"author.html",
	"tech.html",
	"404.html",
	"500.html",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Local().Format("02.01.2006 15:04")
	},
	"isodate": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	"media": func(rel string) string {
		return "/media/" + rel
	},
}

type Options struct {
	Feed       *feed.Assembler
	Service    *service.Service
	Media      *media.Store
	Logger     *logrus.Logger
	JWTSecret  string
	SessionTTL time.Duration
}

type Server struct {
	feed       *feed.Assembler
	svc        *service.Service
	media      *media.Store
	log        *logrus.Logger
	secret     string
	sessionTTL time.Duration
	pages      map[string]*template.Template
	router     chi.Router
}

func New(opts Options) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		feed:       opts.Feed,
		svc:        opts.Service,
		media:      opts.Media,
		log:        logger,
		secret:     opts.JWTSecret,
		sessionTTL: opts.SessionTTL,
		pages:      pages,
	}
	s.setupRoutes()
	return s, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/base.html",
			"templates/partials.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(auth.AuthMiddleware(s.secret))
	r.Use(s.logRequests)
	r.Use(s.recoverer)
	r.Use(s.loadViewer)

	r.NotFound(s.notFound)

	if s.media != nil {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(s.media.Root()))))
	}

	r.Get("/", s.handleIndex)
	r.Get("/group/{slug}/", s.handleGroup)

	r.Get("/about/author/", s.handleStatic("author.html"))
	r.Get("/about/tech/", s.handleStatic("tech.html"))

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login/", s.handleLoginForm)
		r.Post("/login/", s.handleLogin)
		r.Get("/signup/", s.handleSignupForm)
		r.Post("/signup/", s.handleSignup)
		r.Get("/logout/", s.handleLogout)
		r.Post("/logout/", s.handleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)
		r.Get("/new/", s.handleNewPostForm)
		r.Post("/new/", s.handleNewPost)
		r.Get("/follow/", s.handleFollowIndex)
		r.Get("/{username}/follow/", s.handleFollow)
		r.Get("/{username}/unfollow/", s.handleUnfollow)
		r.Post("/{username}/{postID}/comment/", s.handleComment)
	})

	r.Get("/{username}/", s.handleProfile)
	r.Get("/{username}/{postID}/", s.handlePost)
	r.Get("/{username}/{postID}/edit/", s.handleEditPostForm)
	r.Post("/{username}/{postID}/edit/", s.handleEditPost)

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
