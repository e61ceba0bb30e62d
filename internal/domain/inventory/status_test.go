package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		minStock int64
		want     string
	}{
		{"cero es agotado", 0, 10, entity.StatusOutOfStock},
		{"negativo es agotado", -3, 10, entity.StatusOutOfStock},
		{"bajo el umbral es bajo", 5, 10, entity.StatusLowStock},
		{"igual al umbral es bajo", 10, 10, entity.StatusLowStock},
		{"sobre el umbral es disponible", 11, 10, entity.StatusInStock},
		{"23 con umbral 30 es bajo", 23, 30, entity.StatusLowStock},
		{"23 con umbral 10 es disponible", 23, 10, entity.StatusInStock},
		{"umbral cero con existencias", 1, 0, entity.StatusInStock},
		{"umbral cero sin existencias", 0, 0, entity.StatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.DeriveStatus(tc.quantity, tc.minStock))
		})
	}
}
