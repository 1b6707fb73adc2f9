package models

// Validate checks the edge has both ends and does not point at its own follower.
func (f *Follow) Validate() error {
	return validate.Struct(f)
}

// Detached returns a copy of the edge without loaded users.
func (f *Follow) Detached() *Follow {
	cp := *f
	cp.User = nil
	cp.Author = nil
	return &cp
}
