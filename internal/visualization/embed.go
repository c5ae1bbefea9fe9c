package visualization

import "embed"

// templates contains the embedded page and chart templates.
//
//go:embed templates/*
var templates embed.FS
