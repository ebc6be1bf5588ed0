package core

import "testing"

func TestRegistry(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{Info: TableInfo{Key: "widgets", Label: "Widgets"}})
	Register(TableDefinition{Info: TableInfo{Key: "brands", Label: "Brands"}})

	if TableCount() != 2 {
		t.Errorf("TableCount = %d, want 2", TableCount())
	}

	def, ok := Get("widgets")
	if !ok || def.Info.Label != "Widgets" {
		t.Errorf("Get(widgets) = (%+v, %v)", def, ok)
	}
	if _, ok := Get("gadgets"); ok {
		t.Error("Get(gadgets) found an unregistered table")
	}

	all := All()
	if len(all) != 2 || all[0].Info.Key != "brands" || all[1].Info.Key != "widgets" {
		t.Errorf("All() not sorted by key: %v", all)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(TableDefinition{Info: TableInfo{Key: "widgets"}})

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register(TableDefinition{Info: TableInfo{Key: "widgets"}})
}
