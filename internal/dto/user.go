package dto

type UserRequest struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	AdminToken string `json:"admin_token,omitempty"`
}
