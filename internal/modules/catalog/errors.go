package catalog

import "errors"

var (
	ErrNotFound  = errors.New("product not found")
	ErrForbidden = errors.New("not the owner of this product")
)
