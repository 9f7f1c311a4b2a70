package lua

import "embed"

// CoreScripts are loaded in name order before any user script.
//
//go:embed core/*.lua
var CoreScripts embed.FS
