package entity

// Roles de operador (claim "role" del JWT).
const (
	RoleAdmin     = "admin"
	RoleLogistica = "logistica" // compras y transferencias entre instalaciones
	RoleOperador  = "operador"  // personal de una instalación
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleLogistica, RoleOperador:
		return true
	}
	return false
}
