package dto

import "github.com/alloylab/models"

// CreateUserRequest is the admin form for a new account.
// IsOperator defaults to true when omitted.
type CreateUserRequest struct {
	Name       string `json:"name" form:"name" binding:"required,max=100"`
	Post       string `json:"post" form:"post" binding:"max=100"`
	Password   string `json:"password" form:"password" binding:"required,min=6"`
	IsAdmin    bool   `json:"isAdmin" form:"is_admin"`
	IsDirector bool   `json:"isDirector" form:"is_director"`
	IsOperator *bool  `json:"isOperator" form:"is_operator"`
}

// UserListResponse splits accounts by activation status
type UserListResponse struct {
	Active   []models.User `json:"active"`
	Inactive []models.User `json:"inactive"`
}
