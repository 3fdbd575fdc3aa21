package faq

import "errors"

// ErrNotFound is returned when an index-addressed FAQ entry does not exist.
var ErrNotFound = errors.New("FAQ not found")
