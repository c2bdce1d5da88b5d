package dto

// CreateGroupRequest entrada para crear un grupo.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// GroupListResponse nombres de grupo con "Sin grupo" primero.
type GroupListResponse struct {
	Items []string `json:"items"`
}

// ConfigurationResponse configuración del usuario.
type ConfigurationResponse struct {
	MinStockThreshold int             `json:"min_stock_threshold"`
	LoadFormFields    map[string]bool `json:"load_form_fields"`
}

// UpdateConfigurationRequest cambios de configuración; nil = no cambia.
type UpdateConfigurationRequest struct {
	MinStockThreshold *int            `json:"min_stock_threshold" validate:"omitempty,min=0"`
	LoadFormFields    map[string]bool `json:"load_form_fields" validate:"omitempty,dive,keys,oneof=nombre marca codigo cantidad grupo foto,endkeys"`
}

// MigrationResponse resumen de la migración de datos locales.
type MigrationResponse struct {
	Products        int  `json:"products"`
	ProductsSkipped int  `json:"products_skipped"`
	Groups          int  `json:"groups"`
	GroupsSkipped   int  `json:"groups_skipped"`
	Configuration   bool `json:"configuration"`
	Discounts       int  `json:"discounts"`
}

// SessionResponse datos iniciales de la sesión.
type SessionResponse struct {
	Products      []ProductResponse     `json:"products"`
	Groups        []string              `json:"groups"`
	Configuration ConfigurationResponse `json:"configuration"`
	Discounts     map[string]int        `json:"discounts"`
	Remote        bool                  `json:"remote"`
	Migration     *MigrationResponse    `json:"migration,omitempty"`
}

// SetDiscountRequest porcentaje de descuento de una marca; 0 lo quita.
type SetDiscountRequest struct {
	Percent *int `json:"percent" validate:"required,min=0,max=100"`
}

// DiscountListResponse descuentos por marca.
type DiscountListResponse struct {
	Items map[string]int `json:"items"`
}

// HealthResponse estado del servicio.
type HealthResponse struct {
	Status        string `json:"status"`
	Breaker       string `json:"breaker"`
	CacheDegraded bool   `json:"cache_degraded"`
}
