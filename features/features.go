// Package features embeds the bundled calculator feature files.
package features

import "embed"

// FS holds every *.feature file in this directory.
//
//go:embed *.feature
var FS embed.FS

// Pattern matches the bundled files inside FS.
const Pattern = "*.feature"
