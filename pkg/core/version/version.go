// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
//
// Package:     version
// Description: Central version management
// Author:      Mike Stoffels with Claude
// Created:     2026-08-25
// License:     MIT
// ============================================================================

package version

// Version constants for mSW
const (
	// Tool version
	Tool = "0.1.0"

	// StoreSchema is the version of the voices table layout. It only
	// changes when the on-disk layout changes.
	StoreSchema = "1"
)
