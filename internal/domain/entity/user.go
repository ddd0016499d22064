package entity

import "time"

// Niveles de acceso de la consola.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario" // operaciones: lotes, mermas, traslados
	RoleVendedor = "vendedor" // ventas: pedidos, pagos, facturas
)

// User usuario de la consola con su nivel de acceso.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
