package templates

import "embed"

//go:embed definitions/*.yaml
var definitionsFS embed.FS
