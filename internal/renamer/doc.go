// Package renamer executes rename plans against the filesystem.
//
// Renames are applied one file at a time and never overwrite existing
// files; occupied targets receive a numeric suffix instead. A flock-based
// lock serializes invocations so two romclerk processes cannot interleave
// renames in the same tree. Undo support restores journaled names exactly
// and treats an occupied target as a per-file failure.
package renamer
