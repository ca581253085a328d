package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// maxRecipeDepth corta recetas cíclicas mal cargadas.
const maxRecipeDepth = 8

// Line artículo y cantidad pedida, ya resueltos.
type Line struct {
	Article  *entity.Article
	Quantity int
}

// Requirement cantidad de un insumo que consume un conjunto de líneas.
type Requirement struct {
	InsumoID string
	Quantity decimal.Decimal
}

// Shortage insumo cuyo stock no alcanza.
type Shortage struct {
	InsumoID     string
	Denomination string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

// Requirements calcula cuánto de cada insumo consumen las líneas: para manufacturados
// cantidad de receta × cantidad de la línea por ingrediente; para insumos la cantidad
// de la línea. Un mismo insumo en varias líneas se acumula. El orden es estable (por id).
func Requirements(lines []Line) []Requirement {
	acc := make(map[string]decimal.Decimal)
	for _, l := range lines {
		if l.Article == nil || l.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		walkRecipe(l.Article, qty, 0, func(insumo *entity.Article, q decimal.Decimal) {
			acc[insumo.ID] = acc[insumo.ID].Add(q)
		})
	}
	out := make([]Requirement, 0, len(acc))
	for id, q := range acc {
		out = append(out, Requirement{InsumoID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InsumoID < out[j].InsumoID })
	return out
}

// walkRecipe recorre el árbol de la variante: un insumo es hoja, un manufacturado
// se expande por su receta multiplicando cantidades.
func walkRecipe(a *entity.Article, qty decimal.Decimal, depth int, visit func(insumo *entity.Article, qty decimal.Decimal)) {
	if a == nil || depth > maxRecipeDepth {
		return
	}
	if a.IsInsumo() {
		visit(a, qty)
		return
	}
	for _, rl := range a.Recipe() {
		if rl.Insumo == nil {
			continue
		}
		walkRecipe(rl.Insumo, rl.Quantity.Mul(qty), depth+1, visit)
	}
}

// CheckStock compara requerimientos contra el stock disponible (por id de insumo).
// Devuelve los faltantes; vacío significa que alcanza.
func CheckStock(reqs []Requirement, insumos map[string]*entity.Article) []Shortage {
	var shortages []Shortage
	for _, r := range reqs {
		insumo := insumos[r.InsumoID]
		available := decimal.Zero
		name := ""
		if insumo != nil && insumo.Insumo != nil {
			available = insumo.Insumo.Stock
			name = insumo.Denomination
		}
		if r.Quantity.GreaterThan(available) {
			shortages = append(shortages, Shortage{
				InsumoID:     r.InsumoID,
				Denomination: name,
				Required:     r.Quantity,
				Available:    available,
			})
		}
	}
	return shortages
}
