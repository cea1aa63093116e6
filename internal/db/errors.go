package db

import "errors"

// Sentinel errors returned by repositories. Services match on these with
// errors.Is instead of inspecting grpc status codes themselves.
var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)
