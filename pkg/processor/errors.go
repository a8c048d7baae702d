package processor

import "errors"

// ErrBatchFailed is returned when no row in an import batch could be loaded,
// which signals the consumer to retry the message.
var ErrBatchFailed = errors.New("import batch failed")
