package catalog

import "context"

// LocalStore es el almacenamiento clave-valor donde vive el caché local.
// Get devuelve found=false cuando la clave no existe (no es un error).
type LocalStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Observer recibe los datos de sesión cada vez que el Loader termina una carga
// (incluida la recarga posterior a una migración). Lo registra la capa de presentación.
type Observer interface {
	SessionLoaded(ctx context.Context, session Session, data *SessionData)
}

// ObserverFunc adapta una función al contrato Observer.
type ObserverFunc func(ctx context.Context, session Session, data *SessionData)

// SessionLoaded implementa Observer.
func (f ObserverFunc) SessionLoaded(ctx context.Context, session Session, data *SessionData) {
	f(ctx, session, data)
}
