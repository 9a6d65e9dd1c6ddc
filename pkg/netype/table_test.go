package netype_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla estándar
// ──────────────────────────────────────────────────────────────────────────────

func TestDefault_LookupConocidos(t *testing.T) {
	tbl := netype.Default()

	label, ok := tbl.Lookup("pf")
	require.True(t, ok)
	assert.Equal(t, "first names", label)

	label, ok = tbl.Lookup("ty")
	require.True(t, ok)
	assert.Equal(t, "years", label)

	label, ok = tbl.Lookup(netype.StreetNumber)
	require.True(t, ok)
	assert.Equal(t, "street numbers", label)
}

func TestDefault_LookupDesconocido(t *testing.T) {
	tbl := netype.Default()

	for _, code := range []netype.Code{"zz", "", "g-", "PF", "pff"} {
		label, ok := tbl.Lookup(code)
		assert.False(t, ok, "código %q no debe existir", code)
		assert.Empty(t, label)
	}
}

func TestDefault_Contains(t *testing.T) {
	tbl := netype.Default()
	assert.True(t, tbl.Contains("g_"))
	assert.False(t, tbl.Contains("g-"))
}

func TestDefault_TodosLosCodigosResuelven(t *testing.T) {
	tbl := netype.Default()
	for c := range tbl.All() {
		label, ok := tbl.Lookup(c.Code)
		require.True(t, ok, "código %q", c.Code)
		assert.Equal(t, c.Label, label)
		assert.NotEmpty(t, label)
		assert.True(t, tbl.Contains(c.Code))
	}
}

// La tabla de la herramienta de anotación publica 46 tipos.
func TestDefault_TamanoYUnicidad(t *testing.T) {
	tbl := netype.Default()
	assert.Equal(t, 46, tbl.Len())

	seen := make(map[netype.Code]struct{})
	for c := range tbl.All() {
		_, dup := seen[c.Code]
		assert.False(t, dup, "código repetido %q", c.Code)
		seen[c.Code] = struct{}{}
	}
	assert.Len(t, seen, tbl.Len())
}

func TestAll_ReiniciableEIdempotente(t *testing.T) {
	tbl := netype.Default()
	first := slices.Collect(tbl.All())
	second := slices.Collect(tbl.All())
	assert.Equal(t, first, second)
	assert.Equal(t, netype.StreetNumber, first[0].Code)
	assert.Equal(t, netype.Year, first[len(first)-1].Code)
}

func TestAll_CorteTemprano(t *testing.T) {
	n := 0
	for range netype.Default().All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestCodes_DevuelveCopia(t *testing.T) {
	tbl := netype.Default()
	codes := tbl.Codes()
	require.Len(t, codes, tbl.Len())
	codes[0] = "zz"
	assert.Equal(t, netype.StreetNumber, tbl.Codes()[0])
}

func TestCategory_TextoExterno(t *testing.T) {
	tbl := netype.Default()

	c, err := tbl.Category("ps")
	require.NoError(t, err)
	assert.Equal(t, netype.Surname, c.Code)
	assert.Equal(t, "surnames", c.Label)

	_, err = tbl.Category("zz")
	assert.ErrorIs(t, err, netype.ErrUnknownCode)
}

func TestSearch(t *testing.T) {
	tbl := netype.Default()

	assert.Len(t, tbl.Search(""), tbl.Len())

	got := tbl.Search("NAMES")
	codes := make([]netype.Code, 0, len(got))
	for _, c := range got {
		codes = append(codes, c.Code)
	}
	assert.Contains(t, codes, netype.FirstName)
	assert.Contains(t, codes, netype.Surname)
	assert.NotContains(t, codes, netype.Year)

	byCode := tbl.Search("tm")
	require.Len(t, byCode, 1)
	assert.Equal(t, netype.Month, byCode[0].Code)

	assert.Empty(t, tbl.Search("no-existe-nada"))
}

func TestCodesForLabel(t *testing.T) {
	tbl := netype.Default()
	assert.Equal(t, []netype.Code{netype.Year}, tbl.CodesForLabel("Years"))
	assert.Nil(t, tbl.CodesForLabel("planets"))
}

func TestLecturaConcurrente(t *testing.T) {
	tbl := netype.Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range tbl.All() {
				_, ok := tbl.Lookup(c.Code)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_Valida(t *testing.T) {
	cases := []struct {
		name    string
		entries []netype.Category
		wantErr error
	}{
		{"duplicado", []netype.Category{{"pf", "first names"}, {"pf", "otra"}}, netype.ErrDuplicateCode},
		{"etiqueta vacía", []netype.Category{{"pf", "  "}}, netype.ErrEmptyLabel},
		{"código vacío", []netype.Category{{"", "x"}}, netype.ErrInvalidCode},
		{"código largo", []netype.Category{{"pff", "x"}}, netype.ErrInvalidCode},
		{"mayúsculas", []netype.Category{{"PF", "x"}}, netype.ErrInvalidCode},
		{"guion", []netype.Category{{"g-", "x"}}, netype.ErrInvalidCode},
		{"guion bajo inicial", []netype.Category{{"_g", "x"}}, netype.ErrInvalidCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tbl, err := netype.New(tc.entries...)
			assert.Nil(t, tbl)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNew_TablaPropia(t *testing.T) {
	tbl, err := netype.New(
		netype.Category{Code: "pf", Label: "jména"},
		netype.Category{Code: "x_", Label: "ostatní"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	label, ok := tbl.Lookup("pf")
	assert.True(t, ok)
	assert.Equal(t, "jména", label)
	assert.False(t, tbl.Contains("ty"))
}

func TestMustNew_PanicoConTablaInvalida(t *testing.T) {
	assert.Panics(t, func() {
		netype.MustNew(netype.Category{Code: "pf", Label: "a"}, netype.Category{Code: "pf", Label: "b"})
	})
}
