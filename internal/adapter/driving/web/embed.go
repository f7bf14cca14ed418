package web

import "embed"

// StaticFS holds the embedded page stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
