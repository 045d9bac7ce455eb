// Package templates renders the HTMX fragments returned by the import API.
//
// Components are written as .templ sources; run `templ generate` after
// editing them to refresh the _templ.go files.
package templates

// RowIssue is one line of the import summary's problem list.
type RowIssue struct {
	Row     int
	Message string
}
