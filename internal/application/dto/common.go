package dto

// Pagination parámetros comunes de listado.
type Pagination struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize acota los valores a rangos sanos.
func (p *Pagination) Normalize() {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo estándar de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
