package formula

import (
	"sort"
	"strings"

	"github.com/roach88/girder/internal/card"
)

// checkBending verifies bending stress against an allowable stress.
// M and Z are normally references to a beam card and a section card;
// fb is the allowable stress.
//
//	sigma = M/Z
//	ratio = sigma/fb
//	isOk  = 1 if ratio <= 1, else 0
//
// Z == 0 or fb == 0 fails the card: a verification against nothing is
// an error, not a pass.
func checkBending() *card.TypeDef {
	return &card.TypeDef{
		ID:    TypeCheckBending,
		Label: "Bending check",
		DefaultInputs: card.Inputs{
			"fb": card.Lit("150"),
		},
		Schema: card.Schema{
			{Key: "M", Label: "Moment M (N*mm)", Default: 0},
			{Key: "Z", Label: "Section modulus Z (mm^3)", Default: 0},
			{Key: "fb", Label: "Allowable stress fb (N/mm^2)", Default: 0},
		},
		OutputKeys: []string{"sigma", "ratio", "isOk"},
		Calc: func(in map[string]float64, _ card.Inputs) card.Result {
			m, z, fb := in["M"], in["Z"], in["fb"]
			if z == 0 {
				return card.Errf("section modulus Z is zero")
			}
			if fb == 0 {
				return card.Errf("allowable stress fb is zero")
			}
			sigma := m / z
			ratio := sigma / fb
			ok := 0.0
			if ratio <= 1 {
				ok = 1
			}
			return card.Ok(map[string]float64{
				"sigma": sigma,
				"ratio": ratio,
				"isOk":  ok,
			})
		},
	}
}

// sum totals its row inputs. Rows are instance-level: users append
// inputs v1, v2, v3... beyond the static schema, so the key set grows
// per card. The dynamic schema declares whatever v-rows the card
// currently stores, in numeric-ish sorted order, which keeps row
// resolution in declaration order and gives each row a label.
func sum() *card.TypeDef {
	return &card.TypeDef{
		ID:    TypeSum,
		Label: "Sum",
		DefaultInputs: card.Inputs{
			"v1": card.Lit("0"),
			"v2": card.Lit("0"),
		},
		DynamicSchema: func(c *card.Card) card.Schema {
			var rows []string
			for key := range c.Inputs {
				if strings.HasPrefix(key, "v") {
					rows = append(rows, key)
				}
			}
			sort.Slice(rows, func(i, j int) bool {
				if len(rows[i]) != len(rows[j]) {
					return len(rows[i]) < len(rows[j])
				}
				return rows[i] < rows[j]
			})
			schema := make(card.Schema, len(rows))
			for i, key := range rows {
				schema[i] = card.InputSpec{Key: key, Label: "Row " + key, Default: 0}
			}
			return schema
		},
		OutputKeys: []string{"total"},
		Calc: func(in map[string]float64, raw card.Inputs) card.Result {
			total := 0.0
			for key := range raw {
				if strings.HasPrefix(key, "v") {
					total += in[key]
				}
			}
			return card.Ok(map[string]float64{"total": total})
		},
	}
}
