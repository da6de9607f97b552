// Package web holds the embedded HTML views and static assets of the shop front.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html")
}

func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"vnd": FormatVND,
	}
}

// FormatVND rounds to whole dong and groups thousands with dots, e.g. 1234567 -> "1.234.567đ".
func FormatVND(d decimal.Decimal) string {
	s := d.Round(0).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "đ"
}
