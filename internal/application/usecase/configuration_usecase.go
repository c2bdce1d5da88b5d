package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ConfigurationUseCase casos de uso de la configuración del usuario.
type ConfigurationUseCase struct {
	factory *catalog.Factory
}

// NewConfigurationUseCase construye el caso de uso.
func NewConfigurationUseCase(factory *catalog.Factory) *ConfigurationUseCase {
	return &ConfigurationUseCase{factory: factory}
}

// Get devuelve la configuración (se crea con valores por defecto la primera vez).
func (uc *ConfigurationUseCase) Get(ctx context.Context, s catalog.Session) (*dto.ConfigurationResponse, error) {
	cfg, err := uc.factory.For(s).GetConfiguration(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToConfigurationResponse(cfg)
	return &resp, nil
}

// Update cambia el umbral y/o los campos del formulario de carga.
func (uc *ConfigurationUseCase) Update(ctx context.Context, s catalog.Session, in dto.UpdateConfigurationRequest) (*dto.ConfigurationResponse, error) {
	if in.MinStockThreshold == nil && len(in.LoadFormFields) == 0 {
		return nil, fmt.Errorf("%w: no hay cambios", domain.ErrInvalidInput)
	}
	coord := uc.factory.For(s)
	cfg, err := coord.GetConfiguration(ctx)
	if err != nil {
		return nil, err
	}
	if in.MinStockThreshold != nil {
		cfg.MinStockThreshold = *in.MinStockThreshold
	}
	for field, enabled := range in.LoadFormFields {
		if !isLoadFormField(field) {
			return nil, fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
		}
		cfg.LoadFormFields[field] = enabled
	}
	saved, err := coord.SaveConfiguration(ctx, cfg)
	if err != nil {
		return nil, err
	}
	resp := ToConfigurationResponse(saved)
	return &resp, nil
}

func isLoadFormField(field string) bool {
	for _, f := range entity.LoadFormFields {
		if f == field {
			return true
		}
	}
	return false
}

// ToConfigurationResponse convierte la configuración; siempre incluye los seis campos.
func ToConfigurationResponse(cfg *entity.UserConfiguration) dto.ConfigurationResponse {
	fields := make(map[string]bool, len(entity.LoadFormFields))
	for _, f := range entity.LoadFormFields {
		fields[f] = cfg.FieldEnabled(f)
	}
	return dto.ConfigurationResponse{MinStockThreshold: cfg.MinStockThreshold, LoadFormFields: fields}
}
