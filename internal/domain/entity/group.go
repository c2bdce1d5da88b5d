package entity

// DefaultGroup es el grupo reservado "sin grupo": siempre existe localmente,
// nunca se persiste en el backend y no se puede eliminar.
const DefaultGroup = "Sin grupo"

// Group es una etiqueta para agrupar productos; el nombre es único por usuario.
type Group struct {
	UserID string
	Name   string
}

// IsReserved indica si name es el grupo por defecto.
func IsReserved(name string) bool {
	return name == DefaultGroup
}
