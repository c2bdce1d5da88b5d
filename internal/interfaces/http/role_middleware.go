package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// roleResolver es el contrato mínimo para recalcular el rol desde el perfil.
// Lo implementa *auth.AuthUseCase; la interfaz evita acoplar el middleware al caso de uso.
type roleResolver interface {
	ResolveRole(ctx context.Context, userID string) (string, error)
}

// RefreshRole recalcula el rol efectivo en cada request, así una aprobación o revocación
// del administrador aplica sin volver a iniciar sesión. Debe usarse DESPUÉS de AuthMiddleware.
// Si el perfil no se puede consultar se conserva el rol del token.
func RefreshRole(resolver roleResolver, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Next()
		}
		role, err := resolver.ResolveRole(c.UserContext(), userID)
		if err != nil {
			log.Warn().Err(err).Str("uid", userID).Msg("no se pudo refrescar el rol, se usa el del token")
			return c.Next()
		}
		c.Locals(LocalRole, role)
		return c.Next()
	}
}
