// Package preflight provides readiness checks for the directories and
// documents that romclerk depends on.
//
// These checks run in two contexts:
//   - The rename command runs them before scanning so a doomed run fails
//     up front instead of partway through a directory.
//   - The CLI "romclerk check" command displays each result individually.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight
