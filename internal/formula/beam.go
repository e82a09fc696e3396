package formula

import "github.com/roach88/girder/internal/card"

// Axis keys and option values of the beam strategy. The axis values
// are stored as literal string inputs on the card; dispatch reads them
// from the raw slots.
const (
	AxisBoundary = "boundary"
	AxisLoad     = "load"

	BoundarySimple     = "simple"
	BoundaryCantilever = "cantilever"
	LoadUniform        = "uniform"
	LoadPoint          = "point"
)

// beam is a strategy type over two axes: support boundary condition
// and load shape. The full 2x2 product is declared; dispatch falls
// back to the first-declared variant (simple_uniform) for any
// unrecognized combination.
//
// Maximum moment and shear per variant (L span, w line load, P point
// load at the worst position):
//
//	simple_uniform:      M = w*L^2/8   V = w*L/2
//	simple_point:        M = P*L/4     V = P/2
//	cantilever_uniform:  M = w*L^2/2   V = w*L
//	cantilever_point:    M = P*L       V = P
func beam() *card.TypeDef {
	spanSpec := card.InputSpec{Key: "L", Label: "Span L (mm)", Default: 0}
	uniformSchema := card.Schema{
		spanSpec,
		{Key: "w", Label: "Line load w (N/mm)", Default: 0},
	}
	pointSchema := card.Schema{
		spanSpec,
		{Key: "P", Label: "Point load P (N)", Default: 0},
	}

	return &card.TypeDef{
		ID:    TypeBeam,
		Label: "Beam",
		DefaultInputs: card.Inputs{
			AxisBoundary: card.Lit(BoundarySimple),
			AxisLoad:     card.Lit(LoadUniform),
			"L":          card.Lit("1000"),
		},
		OutputKeys: []string{"M_max", "V_max"},
		Strategy: &card.Strategy{
			Axes: []card.Axis{
				{
					Key:     AxisBoundary,
					Label:   "Support",
					Options: []string{BoundarySimple, BoundaryCantilever},
					Default: BoundarySimple,
				},
				{
					Key:     AxisLoad,
					Label:   "Load",
					Options: []string{LoadUniform, LoadPoint},
					Default: LoadUniform,
				},
			},
			Variants: []card.Variant{
				{
					Key:    card.Key(BoundarySimple, LoadUniform),
					Schema: uniformSchema,
					Calc: func(in map[string]float64, _ card.Inputs) card.Result {
						l, w := in["L"], in["w"]
						return card.Ok(map[string]float64{
							"M_max": w * l * l / 8,
							"V_max": w * l / 2,
						})
					},
				},
				{
					Key:    card.Key(BoundarySimple, LoadPoint),
					Schema: pointSchema,
					Calc: func(in map[string]float64, _ card.Inputs) card.Result {
						l, p := in["L"], in["P"]
						return card.Ok(map[string]float64{
							"M_max": p * l / 4,
							"V_max": p / 2,
						})
					},
				},
				{
					Key:    card.Key(BoundaryCantilever, LoadUniform),
					Schema: uniformSchema,
					Calc: func(in map[string]float64, _ card.Inputs) card.Result {
						l, w := in["L"], in["w"]
						return card.Ok(map[string]float64{
							"M_max": w * l * l / 2,
							"V_max": w * l,
						})
					},
				},
				{
					Key:    card.Key(BoundaryCantilever, LoadPoint),
					Schema: pointSchema,
					Calc: func(in map[string]float64, _ card.Inputs) card.Result {
						l, p := in["L"], in["P"]
						return card.Ok(map[string]float64{
							"M_max": p * l,
							"V_max": p,
						})
					},
				},
			},
		},
	}
}
