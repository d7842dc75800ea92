// Package template wraps a pongo2 template set behind a small renderer used by
// the preview package. Templates load from an fs.FS, are cached after first
// use and share a set of default filters.
package template
