package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javrojas/Almacen-api/pkg/textnorm"
)

func TestNormalize_QuitaAcentosYMinusculas(t *testing.T) {
	assert.Equal(t, "azucar", textnorm.Normalize("Azúcar"))
	assert.Equal(t, "limon tahiti", textnorm.Normalize("Limón TAHITÍ"))
}

func TestNormalize_TextoYaNormalizado_NoSeAltera(t *testing.T) {
	assert.Equal(t, "mp-001 harina", textnorm.Normalize("mp-001 harina"))
}

func TestNormalize_Vacio(t *testing.T) {
	assert.Equal(t, "", textnorm.Normalize(""))
}

func TestNormalize_EniePierdeVirgulilla(t *testing.T) {
	// Al descomponer, la ñ pierde la virgulilla y queda n.
	assert.Equal(t, "pina", textnorm.Normalize("Piña"))
}
