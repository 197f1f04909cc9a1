package auth

// LoginRequest is submitted by the login form (POST /).
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginResponse carries the token plus the page the client should go
// to: staff land on the dashboard, everyone else on the directory.
type LoginResponse struct {
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}
