package models

import (
	"reflect"
	"strings"
	"testing"
)

func TestCaseVariantsCarryDescripcion(t *testing.T) {
	variants := []interface{}{CasoGeneral{}, CasoEspecial{}, CasoAcudiente{}}

	for _, variant := range variants {
		typ := reflect.TypeOf(variant)
		field, ok := typ.FieldByName("Descripcion")
		if !ok {
			t.Errorf("%s has no Descripcion field", typ.Name())
			continue
		}
		if !strings.Contains(field.Tag.Get("gorm"), "column:descripcion") {
			t.Errorf("%s.Descripcion is not mapped to the descripcion column: %q",
				typ.Name(), field.Tag.Get("gorm"))
		}
	}
}
