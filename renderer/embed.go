// Package renderer turns forecasts and entry lists into markdown reports.
package renderer

import "embed"

//go:embed *.md
var templates embed.FS
