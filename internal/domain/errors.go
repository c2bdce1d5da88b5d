package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del backend remoto y del almacenamiento local.
// El coordinador de sincronización los intercepta y cae al caché local.
var (
	// ErrRemoteUnavailable: falla de red, timeout o circuito abierto.
	ErrRemoteUnavailable = errors.New("backend remoto no disponible")
	// ErrBackend: el backend respondió pero rechazó la operación (permisos, constraint, no encontrado).
	ErrBackend = errors.New("el backend rechazó la operación")
	// ErrLocalStorageUnavailable: el almacenamiento local falló; se degrada a memoria.
	ErrLocalStorageUnavailable = errors.New("almacenamiento local no disponible")
)

// Errores de grupos.
var (
	ErrReservedGroup = errors.New("el grupo por defecto no se puede modificar")
	ErrGroupExists   = errors.New("el grupo ya existe")
)

// IsRemoteFailure indica si err debe provocar el fallback al caché local.
func IsRemoteFailure(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrBackend)
}
