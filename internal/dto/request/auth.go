package request

type LoginRequest struct {
	Phone string `json:"phone" validate:"required,min=10,max=15"`
	PIN   int    `json:"pin" validate:"required,min=1"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}
