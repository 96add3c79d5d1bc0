// Package tasks holds the background jobs run by the River workers.
package tasks

import (
	"embed"
	"io/fs"
)

//go:embed emails
var emailFiles embed.FS

// Emails returns the markdown email templates and their HTML layout.
func Emails() fs.FS {
	sub, err := fs.Sub(emailFiles, "emails")
	if err != nil {
		panic(err)
	}
	return sub
}
