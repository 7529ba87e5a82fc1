package models

import "strings"

// PlainText strips $ delimiters and braces and replaces a few TeX symbols
// with their Unicode form, so math labels read naturally as plain text.
func PlainText(s string) string {
	s = texSymbols.Replace(s)
	return strings.NewReplacer("$", "", "{", "", "}", "").Replace(s)
}

var texSymbols = strings.NewReplacer(
	`\alpha`, "α",
	`\beta`, "β",
	`\gamma`, "γ",
	`\delta`, "δ",
	`\epsilon`, "ε",
	`\mu`, "μ",
	`\sigma`, "σ",
	`\pm`, "±",
)
