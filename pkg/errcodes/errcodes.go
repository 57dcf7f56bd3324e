package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Numbering plan codes
	InvalidNumber      failure.ErrorCode = "InvalidNumber"      // number param missing or not a string
	DatasetUnavailable failure.ErrorCode = "DatasetUnavailable" // no rule set published yet
	SnapshotNotFound   failure.ErrorCode = "SnapshotNotFound"   // no archived rule set in storage
)
