package domain

import "errors"

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned by InterviewRepository.Update when the
// stored document changed since it was read. The engine retries the whole
// read-modify-write cycle on this error.
var ErrVersionConflict = errors.New("version conflict")
