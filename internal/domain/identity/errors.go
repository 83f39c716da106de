package identity

import "errors"

// Identity domain errors
var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrFaceNotRecognized  = errors.New("face not recognized")
)
