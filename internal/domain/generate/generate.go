// Package generate reglas de generación de valores compartidas por la población inicial y el motor de crecimiento.
package generate

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/catalog"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/entity"
	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

const (
	minAgeYears = 18
	maxAgeYears = 70
)

// Generator produce valores plausibles a partir del catálogo y una fuente aleatoria.
// No es seguro para uso concurrente (el simulador es de un solo hilo).
type Generator struct {
	cat *catalog.Catalog
	r   *rand.Rand
}

// New construye el generador.
func New(cat *catalog.Catalog, r *rand.Rand) *Generator {
	return &Generator{cat: cat, r: r}
}

// Catalog devuelve los datos de referencia del generador.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.cat
}

// Rand devuelve la fuente aleatoria compartida.
func (g *Generator) Rand() *rand.Rand {
	return g.r
}

// Phone número móvil con formato local: +977-98X-NNNNNNN.
func (g *Generator) Phone() string {
	return fmt.Sprintf("+977-%d-%d", sampling.IntBetween(g.r, 980, 989), sampling.IntBetween(g.r, 1000000, 9999999))
}

// Email arma "nombre.apellido<sufijo>@dominio" con sufijo uniforme en [suffixMin, suffixMax].
func (g *Generator) Email(firstName, lastName string, suffixMin, suffixMax int, domains []string) string {
	return fmt.Sprintf("%s.%s%d@%s",
		emailLocalPart(firstName),
		emailLocalPart(lastName),
		sampling.IntBetween(g.r, suffixMin, suffixMax),
		sampling.Pick(g.r, domains),
	)
}

// FirstName nombre uniforme del pool (puede repetir el actual).
func (g *Generator) FirstName() string {
	return sampling.Pick(g.r, g.cat.FirstNames)
}

// LastName apellido uniforme del pool.
func (g *Generator) LastName() string {
	return sampling.Pick(g.r, g.cat.LastNames)
}

// Brand marca uniforme del pool.
func (g *Generator) Brand() string {
	return sampling.Pick(g.r, g.cat.Brands)
}

// Gender género uniforme.
func (g *Generator) Gender() string {
	if g.r.IntN(2) == 0 {
		return entity.GenderMale
	}
	return entity.GenderFemale
}

// Category elige una categoría y una subcategoría consistente con ella.
func (g *Generator) Category() (*catalog.Category, string) {
	cat := &g.cat.Categories[g.r.IntN(len(g.cat.Categories))]
	return cat, sampling.Pick(g.r, cat.Subcategories)
}

// DateOfBirth fecha entre 18 y 70 años antes de ref, truncada al día.
func (g *Generator) DateOfBirth(ref time.Time) time.Time {
	oldest := ref.AddDate(-maxAgeYears, 0, 0)
	youngest := ref.AddDate(-minAgeYears, 0, 0)
	return g.Between(oldest, youngest).UTC().Truncate(24 * time.Hour)
}

// Between instante uniforme en [from, to].
func (g *Generator) Between(from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(g.r.Int64N(int64(span) + 1)))
}

var emailFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// emailLocalPart normaliza un nombre para la parte local de un correo: sin diacríticos, minúsculas, sin espacios.
func emailLocalPart(name string) string {
	folded, _, err := transform.String(emailFold, name)
	if err != nil {
		folded = name
	}
	folded = cases.Lower(language.Und).String(folded)
	return strings.Join(strings.Fields(folded), "")
}
