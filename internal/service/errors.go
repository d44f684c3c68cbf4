package service

import "errors"

// Sentinels shared by the content services. Ownership is checked before any
// mutation; visibility before any read of a single item.
var (
	ErrNotOwner       = errors.New("you do not have permission")
	ErrPrivateContent = errors.New("this content is private")
)
