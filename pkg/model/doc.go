// Package model defines the form document types shared by the builder engine,
// the preview renderer, persistence and export. A FormDocument owns an ordered
// list of top-level fields; Section fields own their own ordered child list and
// may not nest inside another Section. Field kinds serialise using the stable
// identifiers of the field palette (`text`, `number-range`, `checkbox-selection`,
// ...) so persisted payloads survive reordering of the Go enumeration.
//
// FieldConfig is optional on a Field: it is absent until the field has been
// selected for configuration at least once, after which it always carries the
// full label/placeholder/help/required tuple. Use DefaultConfig to obtain the
// values a never-configured field presents with.
package model
