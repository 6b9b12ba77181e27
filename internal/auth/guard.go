package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/VitaminP8/yatube/internal/model"
)

// LoginURL - страница входа, на которую уводятся анонимные запросы к закрытым действиям
const LoginURL = "/auth/login/"

// LoginRedirectURL строит адрес входа с параметром next, указывающим обратно на исходный адрес.
// Слэши в next не экранируются: /auth/login/?next=/new/
func LoginRedirectURL(next string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return LoginURL + "?next=" + escaped
}

// LoginRequired пропускает только аутентифицированные запросы, остальных перенаправляет на вход
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetUserIDFromContext(r.Context()); err != nil {
			http.Redirect(w, r, LoginRedirectURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SafeNext отбрасывает next, уводящий на чужой хост
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

// CanEditPost - редактировать пост может только его автор
func CanEditPost(viewerID uint, authenticated bool, p *model.Post) bool {
	return authenticated && p != nil && p.AuthorID == viewerID
}

// CanFollow - подписка возможна только на другого пользователя
func CanFollow(viewerID uint, authenticated bool, authorID uint) bool {
	return authenticated && viewerID != authorID
}
