package agendah

import "errors"

// Error kinds surfaced by the storage and backup layers.
//
// Write failures always propagate wrapped. List-style reads never fail:
// they degrade to an empty result, and the degradation is only logged,
// so a browse can not take the whole view down with it.
var (
	// ErrStorageUnavailable signals that the storage medium could not be
	// opened or initialized. Fatal at startup.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrImportDecode signals a malformed snapshot or payload encoding.
	// An import aborts on it, leaving the store partially restored.
	ErrImportDecode = errors.New("snapshot decode failed")

	// ErrAttachmentUnavailable signals an open or export request on an
	// attachment whose payload is missing. Non-fatal.
	ErrAttachmentUnavailable = errors.New("attachment payload unavailable")
)
