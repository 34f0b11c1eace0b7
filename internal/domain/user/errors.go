package user

import "errors"

var (
	ErrUserNotFound                 = errors.New("user not found")
	ErrEmailExists                  = errors.New("email already registered")
	ErrInvalidRole                  = errors.New("invalid role")
	ErrAdminAccessRequired          = errors.New("admin access required")
	ErrManagerOrAdminAccessRequired = errors.New("manager or admin access required")
)
