package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/forms"
)

// handleIndex - общая лента. Отрисованная страница живет в кеше до истечения TTL.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	body, hit, err := s.feed.CachedGlobal(cacheKey(r), func() ([]byte, error) {
		page, err := s.feed.Global(r.URL.Query().Get("page"))
		if err != nil {
			return nil, err
		}
		return s.renderBytes("index.html", s.data(r, pageData{"Page": page}))
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	write(w, http.StatusOK, body)
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	gp, err := s.feed.Group(chi.URLParam(r, "slug"), r.URL.Query().Get("page"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "group.html", s.data(r, pageData{
		"Group": gp.Group,
		"Page":  &gp.Page,
	}))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var viewerID uint
	viewer := viewerFrom(r)
	if viewer != nil {
		viewerID = viewer.ID
	}

	pp, err := s.feed.Profile(chi.URLParam(r, "username"), viewerID, viewer != nil, r.URL.Query().Get("page"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "profile.html", s.data(r, pageData{
		"Profile": pp,
		"Page":    &pp.Page,
	}))
}

func (s *Server) handleFollowIndex(w http.ResponseWriter, r *http.Request) {
	viewerID, err := auth.GetUserIDFromContext(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, err := s.feed.Following(viewerID, r.URL.Query().Get("page"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "follow.html", s.data(r, pageData{"Page": page}))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	s.renderPost(w, r, postID, "", forms.FieldErrors{})
}

// renderPost рисует страницу поста, в том числе с ошибками формы комментария
func (s *Server) renderPost(w http.ResponseWriter, r *http.Request, postID uint, commentText string, errs forms.FieldErrors) {
	view, err := s.feed.Post(chi.URLParam(r, "username"), postID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var viewerID uint
	viewer := viewerFrom(r)
	if viewer != nil {
		viewerID = viewer.ID
	}

	s.render(w, r, http.StatusOK, "post.html", s.data(r, pageData{
		"View":        view,
		"CanEdit":     auth.CanEditPost(viewerID, viewer != nil, view.Post),
		"CommentText": commentText,
		"Errors":      errs,
	}))
}

func (s *Server) handleStatic(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, name, s.data(r, nil))
	}
}

func postIDParam(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "postID"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func postURL(username string, postID uint) string {
	return "/" + username + "/" + strconv.FormatUint(uint64(postID), 10) + "/"
}

func profileURL(username string) string {
	return "/" + username + "/"
}
