package entity

// DefaultMinStock es el umbral de stock mínimo cuando el usuario no configuró otro.
const DefaultMinStock = 5

// Campos del formulario de carga que el usuario puede habilitar o deshabilitar.
const (
	FieldName     = "nombre"
	FieldBrand    = "marca"
	FieldCode     = "codigo"
	FieldQuantity = "cantidad"
	FieldGroup    = "grupo"
	FieldPhoto    = "foto"
)

// LoadFormFields lista los campos configurables en el orden del formulario.
var LoadFormFields = []string{FieldName, FieldBrand, FieldCode, FieldQuantity, FieldGroup, FieldPhoto}

// UserConfiguration es la configuración única por usuario.
type UserConfiguration struct {
	UserID            string
	MinStockThreshold int
	LoadFormFields    map[string]bool
}

// DefaultConfiguration devuelve la configuración inicial: umbral 5 y todos los campos habilitados.
func DefaultConfiguration(userID string) *UserConfiguration {
	fields := make(map[string]bool, len(LoadFormFields))
	for _, f := range LoadFormFields {
		fields[f] = true
	}
	return &UserConfiguration{
		UserID:            userID,
		MinStockThreshold: DefaultMinStock,
		LoadFormFields:    fields,
	}
}

// FieldEnabled devuelve si el campo está habilitado; los campos ausentes cuentan como habilitados.
func (c *UserConfiguration) FieldEnabled(field string) bool {
	if c == nil || c.LoadFormFields == nil {
		return true
	}
	enabled, ok := c.LoadFormFields[field]
	return !ok || enabled
}
