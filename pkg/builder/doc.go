// Package builder implements the form builder engine behind the form interface
// page: an explicit State owning an arena of field records indexed by id, the
// ordered top-level list, and one ordered child list per Section.
//
// All operations run to completion on the caller's goroutine; State is not
// safe for concurrent use and is meant to be owned by a single page/session.
// Structural operations (CreateField, DeleteField, Reorder, Select and the drag
// session) are rejected with ErrLockedForEditing while test mode is enabled.
// The configuration panel keeps at most one draft at a time; drafts are only
// reflected in the displayed preview until Save commits them.
//
// Collaborators are injected through options: a Confirmer gates deletions, a
// Notifier receives transient user-facing notices and a Renderer turns the
// displayed configuration of a field into preview markup.
package builder
