// Package views holds the embedded HTML templates and static assets.
package views

import (
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var functions = template.FuncMap{
	"gravatar": Gravatar,
	"richText": func(s string) template.HTML {
		// post bodies are authored by the admin only
		return template.HTML(s)
	},
}

func Templates() (*template.Template, error) {
	return template.New("").Funcs(functions).ParseFS(templateFS, "templates/*.html")
}

func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Gravatar returns the avatar URL for an email address.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=100&d=retro&r=g", hex.EncodeToString(sum[:]))
}
