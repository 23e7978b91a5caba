package models

import "strings"

// CreateAccountRequest is the form posted to /create_account
type CreateAccountRequest struct {
	Fullname string `form:"fullname"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Trim strips surrounding whitespace from every field
func (r *CreateAccountRequest) Trim() {
	r.Fullname = strings.TrimSpace(r.Fullname)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}

// LoginRequest is the form posted to /login
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (r *LoginRequest) Trim() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
}
