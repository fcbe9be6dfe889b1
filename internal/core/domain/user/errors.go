package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrPasswordNotSet     = errors.New("user has no password set")
	ErrPasswordNotChanged = errors.New("new password must differ from the old one")
)
