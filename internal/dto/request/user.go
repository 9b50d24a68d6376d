package request

type CreateUserRequest struct {
	Phone  string  `json:"phone" validate:"required,min=10,max=15"`
	Name   string  `json:"name" validate:"required,min=2,max=100"`
	PIN    *int    `json:"pin,omitempty" validate:"omitempty,min=1"`
	City   *string `json:"city,omitempty"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,oneof=Άνδρας Γυναίκα"`
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=client instructor admin"`
}
