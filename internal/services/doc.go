// Package services defines the failure taxonomy shared across romclerk.
//
// Commands tag failures with sentinel markers via Wrap so callers can
// classify them with errors.Is: metadata problems abort a run, rename
// failures are reported per item, and lock contention tells the user a
// second instance is already applying.
//
// The package also carries run-scoped context annotations (run id and root
// directory) that the logging package folds into structured output.
package services
