package entities

type RegisterRequest struct {
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	Cedula    string `json:"cedula"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Rol       string `json:"rol,omitempty"` // admin | empleado | cliente
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
