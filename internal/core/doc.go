// Package core holds the entity list/filter/edit workflow shared by the
// faculty and program screens, independent of any rendering layer.
//
// # Architecture
//
//   - Page: a generic [Page] owns one entity collection, the derived
//     filtered view and the create/edit modal. It talks to the REST API
//     through the narrow [Service] interface and announces outcomes through
//     a [Notifier].
//   - Bindings: a [Binding] tells a Page how to read identifiers, names and
//     the active flag of an entity, which form fields exist, how they are
//     validated, and how validated values become a request DTO.
//   - Validation: a [Schema] composes [Rule]s (required, max length, numeric
//     range) evaluated synchronously against plain [Values].
//   - Filtering: [Criteria] are pure predicates; the filtered view is always
//     re-derived from the full collection with [Apply].
//   - Registry: entity screens register an [EntityInfo] at init time so the
//     shell can list them.
//
// # Page lifecycle
//
//  1. Load fetches the full collection and re-derives the filtered view.
//  2. SetFilter swaps the criteria and re-derives the view in memory.
//  3. OpenCreate / OpenEdit fill the modal with defaults or current values.
//  4. Submit validates, creates or updates, closes the modal and reloads.
//  5. Delete requires confirmation and an active entity, then reloads.
//
// Mutations never patch the local collection; every success reloads it.
//
// # Error Handling
//
// Transport and server errors are mapped to user-facing text with
// [MapError] and [DisplayMessage]; the server's own message wins when the
// API supplied one.
package core
