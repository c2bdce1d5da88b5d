package entity

import "time"

// Estados del perfil.
const (
	ProfileStatusPending    = "pendiente"
	ProfileStatusAuthorized = "autorizado"
)

// Roles guardados en el perfil y roles efectivos resueltos para la sesión.
const (
	RoleAdmin             = "admin"
	RoleSolicitante       = "solicitante"
	RoleMayoristaAprobado = "mayorista_autorizado"
)

// User representa una cuenta autenticable.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile guarda el estado de aprobación para ver precios mayoristas.
type UserProfile struct {
	ID           string // igual al ID del usuario
	Email        string
	Name         string
	Company      string
	Phone        string
	Status       string // pendiente, autorizado
	Role         string // admin, solicitante
	CanSeePrices bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveRole traduce el perfil al rol que usa la capa de presentación.
func (p *UserProfile) EffectiveRole() string {
	if p == nil {
		return RoleSolicitante
	}
	if p.Role == RoleAdmin {
		return RoleAdmin
	}
	if p.Status == ProfileStatusAuthorized && p.CanSeePrices {
		return RoleMayoristaAprobado
	}
	return RoleSolicitante
}

// CanSeeWholesale indica si un rol efectivo puede ver precios mayoristas.
func CanSeeWholesale(role string) bool {
	return role == RoleAdmin || role == RoleMayoristaAprobado
}
