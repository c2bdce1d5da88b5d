package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// productRecord es el formato JSON de un producto en el caché local y en las claves
// heredadas ("articulos_<uid>"). Los nombres de campo coinciden con las columnas del backend.
type productRecord struct {
	ID              recordID        `json:"id"`
	UserID          string          `json:"user_id,omitempty"`
	Nombre          string          `json:"nombre"`
	Marca           string          `json:"marca"`
	Codigo          string          `json:"codigo"`
	Cantidad        int             `json:"cantidad"`
	Grupo           *string         `json:"grupo"`
	Foto            *string         `json:"foto"`
	Faltante        bool            `json:"faltante"`
	Visible         *bool           `json:"visible"` // ausente = visible
	PrecioMayorista decimal.Decimal `json:"precio_mayorista"`
}

// recordID acepta IDs como texto o como número (la versión anterior usaba timestamps).
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = recordID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = recordID(s)
	return nil
}

// configRecord es el formato JSON de la configuración en el caché local.
type configRecord struct {
	StockMinimo        int             `json:"stockMinimo"`
	ConfiguracionCarga map[string]bool `json:"configuracionCarga"`
}

func toProductRecord(p *entity.Product) productRecord {
	visible := p.Visible
	return productRecord{
		ID:              recordID(p.ID),
		UserID:          p.UserID,
		Nombre:          p.Name,
		Marca:           p.Brand,
		Codigo:          p.Code,
		Cantidad:        p.Quantity,
		Grupo:           nullable(p.Group),
		Foto:            nullable(p.Photo),
		Faltante:        p.Missing,
		Visible:         &visible,
		PrecioMayorista: p.WholesalePrice,
	}
}

func (r productRecord) toEntity(userID string) *entity.Product {
	p := &entity.Product{
		ID:             string(r.ID),
		UserID:         r.UserID,
		Name:           r.Nombre,
		Brand:          r.Marca,
		Code:           r.Codigo,
		Quantity:       r.Cantidad,
		Missing:        r.Faltante,
		Visible:        r.Visible == nil || *r.Visible,
		WholesalePrice: r.PrecioMayorista,
	}
	if p.UserID == "" {
		p.UserID = userID
	}
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	if r.Grupo != nil {
		p.Group = *r.Grupo
	}
	if r.Foto != nil {
		p.Photo = *r.Foto
	}
	return p
}

func toConfigRecord(c *entity.UserConfiguration) configRecord {
	return configRecord{StockMinimo: c.MinStockThreshold, ConfiguracionCarga: c.LoadFormFields}
}

func (r configRecord) toEntity(userID string) *entity.UserConfiguration {
	cfg := entity.DefaultConfiguration(userID)
	if r.StockMinimo >= 0 {
		cfg.MinStockThreshold = r.StockMinimo
	}
	for k, v := range r.ConfiguracionCarga {
		cfg.LoadFormFields[k] = v
	}
	return cfg
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
