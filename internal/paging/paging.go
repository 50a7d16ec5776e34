// Package paging реализует постраничное чтение по offset/limit и
// вычисление навигационных ссылок.
package paging

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultOffset используется при отсутствии или некорректном значении offset.
	DefaultOffset = 0
	// DefaultLimit используется при отсутствии или некорректном значении limit.
	DefaultLimit = 10
)

// Params содержит нормализованные параметры страницы.
type Params struct {
	Offset int
	Limit  int
}

// ParseParams извлекает offset и limit из query-параметров запроса.
// Отсутствующие, нечисловые и отрицательные значения молча заменяются
// значениями по умолчанию — некорректная пагинация никогда не приводит
// к ошибке запроса.
func ParseParams(values url.Values) Params {
	return Params{
		Offset: positiveOrDefault(values.Get("offset"), DefaultOffset),
		Limit:  positiveOrDefault(values.Get("limit"), DefaultLimit),
	}
}

func positiveOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	if n == 0 && def != 0 {
		return def
	}
	return n
}

// Link — одна навигационная ссылка.
type Link struct {
	Href string `json:"href"`
}

// Links содержит ссылки на текущую, предыдущую и следующую страницы.
type Links struct {
	Self Link  `json:"self"`
	Prev *Link `json:"prev,omitempty"`
	Next *Link `json:"next,omitempty"`
}

// NewLinks строит ссылки страницы по пути запроса и числу полученных строк.
// Ссылка next добавляется только когда страница заполнена целиком
// (length == limit): это эвристика «возможно, есть ещё», а не точный
// подсчёт общего числа строк. Ссылка prev добавляется при offset > 0,
// её offset ограничен снизу нулём.
func NewLinks(path string, p Params, length int) Links {
	links := Links{
		Self: pageLink(path, p.Offset, p.Limit),
	}

	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		l := pageLink(path, prev, p.Limit)
		links.Prev = &l
	}

	if length == p.Limit {
		l := pageLink(path, p.Offset+p.Limit, p.Limit)
		links.Next = &l
	}

	return links
}

func pageLink(path string, offset, limit int) Link {
	return Link{
		Href: fmt.Sprintf("%s?offset=%d&limit=%d", path, offset, limit),
	}
}
