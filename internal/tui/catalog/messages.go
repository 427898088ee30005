package catalog

import (
	"github.com/msto63/mSW/internal/voicestore"
)

// voicesLoadedMsg carries the result of a catalog query
type voicesLoadedMsg struct {
	voices []*voicestore.VoiceRecord
	err    error
}

// refreshMsg triggers a reload of the catalog
type refreshMsg struct{}
