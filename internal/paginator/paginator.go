// Package paginator режет упорядоченную коллекцию на страницы фиксированного размера.
//
// Номер страницы приходит из строки запроса как есть. Отсутствующий или нечисловой номер
// дает первую страницу, номер за пределами диапазона прижимается к последней странице.
// Пустая коллекция состоит из одной пустой страницы.
package paginator

import (
	"strconv"
	"strings"
)

type Paginator struct {
	count   int
	perPage int
}

func New(count, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{count: count, perPage: perPage}
}

func (p *Paginator) Count() int {
	return p.count
}

func (p *Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return (p.count + p.perPage - 1) / p.perPage
}

// Bounds - положение страницы в коллекции: Offset/Limit для запроса к хранилищу
type Bounds struct {
	Number   int
	NumPages int
	Offset   int
	Limit    int
}

func (b Bounds) HasPrevious() bool { return b.Number > 1 }
func (b Bounds) HasNext() bool     { return b.Number < b.NumPages }
func (b Bounds) PreviousNumber() int {
	return b.Number - 1
}
func (b Bounds) NextNumber() int {
	return b.Number + 1
}

// Page разбирает сырой номер страницы и возвращает ее границы
func (p *Paginator) Page(raw string) Bounds {
	return p.PageNumber(parse(raw))
}

func (p *Paginator) PageNumber(number int) Bounds {
	numPages := p.NumPages()
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	offset := (number - 1) * p.perPage
	limit := p.perPage
	if rest := p.count - offset; rest < limit {
		limit = rest
	}
	return Bounds{Number: number, NumPages: numPages, Offset: offset, Limit: limit}
}

func parse(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}
