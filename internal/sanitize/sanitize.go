// Package sanitize очищает свободный текст от разметки перед записью в БД.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.StrictPolicy()

// Clean удаляет из строки любую HTML-разметку. Текст сохраняется,
// теги и их содержимое-атрибуты отбрасываются.
func Clean(s string) string {
	return policy.Sanitize(s)
}
