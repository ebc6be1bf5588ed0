package tables

import "github.com/pcmon/catalog/internal/core"

func init() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   "brands",
			Label: "Brands",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "name", Type: core.FieldText, Required: true, MaxLength: 100},
		},
		PrimaryKey:        "name",
		DisplayTimestamps: []string{"created_at", "updated_at"},
	})
}
