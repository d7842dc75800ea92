// Package preview renders the builder's visual field previews as HTML
// fragments. Each field kind maps onto a control template through an
// exhaustive switch; user-entered text (labels, placeholders, help) is passed
// through a strict bluemonday policy before it reaches the templates.
//
// Renderer satisfies builder.Renderer so a builder.State can keep previews in
// sync with drafts and committed configuration.
package preview
