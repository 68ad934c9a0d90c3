// Package textutil provides text helpers for safe filesystem naming.
//
// Catalog titles arrive from user-maintained DAT files and may contain
// characters that are illegal or hazardous in filenames. SanitizeFileName
// normalizes and cleans them with a deterministic underscore policy so the
// same title always maps to the same on-disk name.
package textutil
