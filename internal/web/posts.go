package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/forms"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/model"
	"github.com/VitaminP8/yatube/internal/service"
)

// запас сверх картинки на текстовые поля формы
const formOverhead = 1 << 20

func (s *Server) handleNewPostForm(w http.ResponseWriter, r *http.Request) {
	s.renderPostForm(w, r, nil, forms.PostInput{}, forms.FieldErrors{})
}

func (s *Server) handleNewPost(w http.ResponseWriter, r *http.Request) {
	in, img, done, err := readPostForm(w, r)
	defer done()
	if err != nil {
		s.postFormError(w, r, nil, in, err)
		return
	}

	_, err = s.svc.CreatePost(r.Context(), in, img)
	if err != nil {
		s.postFormError(w, r, nil, in, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleEditPostForm - не автор, в том числе аноним, уходит на страницу поста
func (s *Server) handleEditPostForm(w http.ResponseWriter, r *http.Request) {
	p, ok := s.editablePost(w, r)
	if !ok {
		return
	}

	in := forms.PostInput{Text: p.Text}
	if p.GroupID != nil {
		in.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	s.renderPostForm(w, r, p, in, forms.FieldErrors{})
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.editablePost(w, r)
	if !ok {
		return
	}

	in, img, done, err := readPostForm(w, r)
	defer done()
	if err != nil {
		s.postFormError(w, r, p, in, err)
		return
	}

	updated, err := s.svc.EditPost(r.Context(), p.AuthorName, p.ID, in, img)
	if errors.Is(err, auth.ErrForbidden) {
		http.Redirect(w, r, postURL(p.AuthorName, p.ID), http.StatusFound)
		return
	}
	if err != nil {
		s.postFormError(w, r, p, in, err)
		return
	}
	http.Redirect(w, r, postURL(updated.AuthorName, updated.ID), http.StatusFound)
}

// editablePost отвечает сам, если пост не найден или зритель не автор
func (s *Server) editablePost(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	postID, ok := postIDParam(r)
	if !ok {
		s.notFound(w, r)
		return nil, false
	}

	p, err := s.svc.EditablePost(r.Context(), chi.URLParam(r, "username"), postID)
	if errors.Is(err, auth.ErrForbidden) {
		http.Redirect(w, r, postURL(p.AuthorName, p.ID), http.StatusFound)
		return nil, false
	}
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return p, true
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		s.notFound(w, r)
		return
	}
	username := chi.URLParam(r, "username")

	if err := r.ParseForm(); err != nil {
		s.fail(w, r, err)
		return
	}
	in := forms.CommentInput{Text: r.PostFormValue("text")}

	_, err := s.svc.AddComment(r.Context(), username, postID, in)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		s.renderPost(w, r, postID, in.Text, verr.Fields)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, postURL(username, postID), http.StatusFound)
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	err := s.svc.Follow(r.Context(), username)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrAlreadyFollowing):
		s.log.WithError(err).WithField("author", username).Debug("follow skipped")
	default:
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := s.svc.Unfollow(r.Context(), username); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, profileURL(username), http.StatusFound)
}

func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, p *model.Post, in forms.PostInput, errs forms.FieldErrors) {
	groups, err := s.svc.Groups.GetAllGroups()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	values := pageData{
		"Form":   in,
		"Groups": groups,
		"Errors": errs,
	}
	if p != nil {
		values["Post"] = p
	}
	s.render(w, r, http.StatusOK, "post_form.html", s.data(r, values))
}

// postFormError - ошибки формы перерисовывают ее со статусом 200, остальное уходит в fail
func (s *Server) postFormError(w http.ResponseWriter, r *http.Request, p *model.Post, in forms.PostInput, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		s.renderPostForm(w, r, p, in, verr.Fields)
		return
	}
	s.fail(w, r, err)
}

// readPostForm разбирает форму поста, обычную или multipart с картинкой.
// done закрывает загруженный файл и вызывается всегда.
func readPostForm(w http.ResponseWriter, r *http.Request) (forms.PostInput, *service.Image, func(), error) {
	done := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageSize+formOverhead)

	err := r.ParseMultipartForm(formOverhead)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fields := forms.FieldErrors{}
			fields.Add("image", "Размер файла не должен превышать 10 МБ.")
			return forms.PostInput{}, nil, done, &service.ValidationError{Fields: fields}
		}
		return forms.PostInput{}, nil, done, err
	}

	in := forms.PostInput{
		Text:  r.FormValue("text"),
		Group: r.FormValue("group"),
	}

	// в обычной форме файла быть не может, а FormFile снова попробовал бы разобрать multipart
	if r.MultipartForm == nil {
		return in, nil, done, nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, done, nil
	}
	if err != nil {
		return in, nil, done, err
	}
	return in, &service.Image{Filename: header.Filename, Body: file}, func() { file.Close() }, nil
}
