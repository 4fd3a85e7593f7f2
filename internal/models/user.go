package models

type contextKey string

const UserContextKey contextKey = "user"

const ScopeContextKey contextKey = "scope"

type User struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	PassHash []byte `json:"pass_hash"`
	IsAdmin  bool   `json:"is_admin"`
}
