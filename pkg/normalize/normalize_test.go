package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ledger/pkg/normalize"
)

func TestName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bodega Central", "bodega central"},
		{"  bodega   CENTRAL  ", "bodega central"},
		{"Sucursal Norté", "sucursal norte"},
		{"FERRETERÍA EL PUERTO", "ferreteria el puerto"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Name(tc.in), "entrada: %q", tc.in)
	}
}

func TestName_MismaClaveParaVariantes(t *testing.T) {
	assert.Equal(t,
		normalize.Name("Sala de Ventas"),
		normalize.Name("sala  DE  ventás"),
		"variantes de mayúsculas, acentos y espacios deben producir la misma clave")
}
