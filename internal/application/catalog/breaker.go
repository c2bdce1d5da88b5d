package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// BreakerState es el estado del circuito que protege las llamadas al backend remoto.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // las llamadas pasan
	BreakerOpen                         // fallo inmediato, se usa el caché local
	BreakerHalfOpen                     // se deja pasar una prueba
)

// String devuelve el nombre del estado (health y logs).
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig parámetros del circuito.
type BreakerConfig struct {
	FailureThreshold int           // fallos consecutivos para abrir (default 5)
	SuccessThreshold int           // éxitos en half-open para cerrar (default 1)
	OpenFor          time.Duration // tiempo abierto antes de probar (default 30s)
}

// Breaker corta las llamadas remotas tras fallos de conectividad consecutivos,
// para que el fallback local no espere el timeout en cada operación.
// Los rechazos del backend (domain.ErrBackend) y las cancelaciones del llamador
// no cuentan como fallo.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[struct{}]
}

// NewBreaker crea un circuito cerrado.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 1
	}
	if cfg.OpenFor <= 0 {
		cfg.OpenFor = 30 * time.Second
	}
	threshold := uint32(cfg.FailureThreshold)
	return &Breaker{cb: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "backend-remoto",
		MaxRequests: uint32(cfg.SuccessThreshold),
		Timeout:     cfg.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrBackend) || errors.Is(err, context.Canceled)
		},
	})}
}

// State devuelve el estado actual; pasa de open a half-open cuando vence OpenFor.
func (b *Breaker) State() BreakerState {
	switch b.cb.State() {
	case gobreaker.StateOpen:
		return BreakerOpen
	case gobreaker.StateHalfOpen:
		return BreakerHalfOpen
	default:
		return BreakerClosed
	}
}

// Execute ejecuta fn si el circuito lo permite. Con el circuito abierto (o la
// prueba de half-open ya en curso) devuelve domain.ErrRemoteUnavailable sin llamar a fn.
func (b *Breaker) Execute(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	return err
}
