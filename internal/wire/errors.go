package wire

import "errors"

// ErrProtocolViolation is returned by Decode for any frame that is not
// valid UTF-8 JSON, has an unrecognised "type", or is missing/mistyping a
// field required by its variant. The caller's response is always the same:
// close the connection, no further protocol interaction.
var ErrProtocolViolation = errors.New("wire: protocol violation")
