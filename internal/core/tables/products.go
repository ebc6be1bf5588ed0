package tables

import "github.com/pcmon/catalog/internal/core"

func init() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   "products",
			Label: "Products",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "product_id", Type: core.FieldText, Required: true, MaxLength: 100},
			{Name: "model_name", Type: core.FieldText, Required: true, MaxLength: 100},
			{Name: "brand_id", Type: core.FieldInteger},
			{Name: "size_inch", Type: core.FieldDecimal, Required: true},
			{Name: "resolution_w", Type: core.FieldInteger},
			{Name: "resolution_h", Type: core.FieldInteger},
			{Name: "panel_type_id", Type: core.FieldInteger},
			{Name: "refresh_rate", Type: core.FieldInteger, Required: true},
			{Name: "price_jpy", Type: core.FieldDecimal, Required: true},
			{Name: "stock_quantity", Type: core.FieldInteger, Required: true},
			{Name: "release_date", Type: core.FieldDate, Required: true},
			{Name: "status", Type: core.FieldText, Required: true, Allowed: []string{"active", "discontinued"}},
		},
		PrimaryKey: "product_id",
		References: []core.ReferenceBinding{
			{NameField: "brand", IDField: "brand_id", Entity: "brands"},
			{NameField: "panel_type", IDField: "panel_type_id", Entity: "panel_types"},
		},
		Composite: &core.CompositeBinding{
			DisplayField: "resolution",
			WidthField:   "resolution_w",
			HeightField:  "resolution_h",
		},
		IntColumns: []string{
			"brand_id",
			"panel_type_id",
			"resolution_w",
			"resolution_h",
		},
		DisplayTimestamps: []string{"created_at", "updated_at"},
	})
}
