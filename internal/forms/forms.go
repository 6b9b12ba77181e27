// Package forms проверяет значения форм. Функции чистые: на вход поля формы,
// на выход либо проверенные значения, либо ошибки по полям.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/VitaminP8/yatube/internal/model"
)

// FieldErrors - ошибки по имени поля формы
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// Get возвращает первую ошибку поля, удобно для шаблонов
func (e FieldErrors) Get(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// ReservedUsernames совпадают с фиксированными сегментами маршрутов
var ReservedUsernames = map[string]bool{
	"new": true, "follow": true, "group": true, "auth": true,
	"about": true, "media": true, "static": true,
}

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return usernameRe.MatchString(s) && !ReservedUsernames[strings.ToLower(s)]
	})
	return v
}

var messages = map[string]string{
	"required": "Обязательное поле.",
	"numeric":  "Выберите корректный вариант.",
	"email":    "Введите правильный адрес электронной почты.",
	"max":      "Слишком длинное значение.",
	"min":      "Слишком короткое значение.",
	"eqfield":  "Пароли не совпадают.",
	"username": "Допустимы только буквы, цифры и символы @/./+/-/_.",
}

func check(form interface{}) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("__all__", err.Error())
		return errs
	}
	for _, fe := range verrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение."
		}
		errs.Add(fe.Field(), msg)
	}
	return errs
}

type PostInput struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group" validate:"omitempty,numeric"`
}

type ValidatedPost struct {
	Text    string
	GroupID *uint
}

// ValidatePost проверяет форму поста. groups - группы, из которых можно выбирать.
func ValidatePost(in PostInput, groups []*model.Group) (ValidatedPost, FieldErrors) {
	in.Text = strings.TrimSpace(in.Text)
	in.Group = strings.TrimSpace(in.Group)

	errs := check(in)
	if errs.Any() {
		return ValidatedPost{}, errs
	}

	out := ValidatedPost{Text: in.Text}
	if in.Group == "" {
		return out, errs
	}

	id, err := strconv.ParseUint(in.Group, 10, 64)
	if err != nil {
		errs.Add("group", messages["numeric"])
		return ValidatedPost{}, errs
	}
	for _, g := range groups {
		if uint64(g.ID) == id {
			groupID := g.ID
			out.GroupID = &groupID
			return out, errs
		}
	}
	errs.Add("group", messages["numeric"])
	return ValidatedPost{}, errs
}

type CommentInput struct {
	Text string `form:"text" validate:"required"`
}

func ValidateComment(in CommentInput) (string, FieldErrors) {
	in.Text = strings.TrimSpace(in.Text)
	errs := check(in)
	if errs.Any() {
		return "", errs
	}
	return in.Text, errs
}

type SignupInput struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,email"`
	Password  string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"eqfield=Password"`
}

func ValidateSignup(in SignupInput) (SignupInput, FieldErrors) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	errs := check(in)
	if errs.Any() {
		return SignupInput{}, errs
	}
	return in, errs
}
