// Package catalog implementa la capa de sincronización local-first del catálogo:
// el coordinador remoto-primero con fallback al caché local, el caché de snapshots
// por usuario y la migración única de datos locales previos hacia el backend.
package catalog

// Session identifica al usuario de una sesión activa. Se crea un Coordinator por sesión;
// no hay estado global de "usuario actual".
type Session struct {
	UserID string
	Email  string
	// Offline fuerza el modo sin conexión: no se intenta ninguna llamada remota.
	Offline bool
}

// Authenticated indica si hay una sesión con la que se puede hablar con el backend remoto.
func (s Session) Authenticated() bool {
	return s.UserID != "" && !s.Offline
}
