package dto

// LoginForm formulario de acceso del operador.
type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required" msg:"Username is required"`
	Password string `form:"password" json:"password" validate:"required" msg:"Password is required"`
}

// LoginResponse token de sesión para clientes de la API JSON.
type LoginResponse struct {
	Token    string `json:"token"`
	Operator string `json:"operator"`
}
