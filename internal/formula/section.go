package formula

import (
	"math"

	"github.com/roach88/girder/internal/card"
)

// sectionRectangle computes the section properties of a solid
// rectangle: area, second moment of area about the strong axis, and
// elastic section modulus.
//
//	A  = B*H
//	Ix = B*H^3/12
//	Z  = B*H^2/6
func sectionRectangle() *card.TypeDef {
	return &card.TypeDef{
		ID:    TypeSectionRectangle,
		Label: "Rectangular section",
		DefaultInputs: card.Inputs{
			"B": card.Lit("100"),
			"H": card.Lit("200"),
		},
		Schema: card.Schema{
			{Key: "B", Label: "Width B (mm)", Default: 0},
			{Key: "H", Label: "Height H (mm)", Default: 0},
		},
		OutputKeys: []string{"A", "Ix", "Z"},
		Calc: func(in map[string]float64, _ card.Inputs) card.Result {
			b, h := in["B"], in["H"]
			if b < 0 || h < 0 {
				return card.Errf("negative dimension: B=%g H=%g", b, h)
			}
			return card.Ok(map[string]float64{
				"A":  b * h,
				"Ix": b * h * h * h / 12,
				"Z":  b * h * h / 6,
			})
		},
	}
}

// sectionCircle computes the section properties of a solid circle of
// diameter D.
func sectionCircle() *card.TypeDef {
	return &card.TypeDef{
		ID:    TypeSectionCircle,
		Label: "Circular section",
		DefaultInputs: card.Inputs{
			"D": card.Lit("100"),
		},
		Schema: card.Schema{
			{Key: "D", Label: "Diameter D (mm)", Default: 0},
		},
		OutputKeys: []string{"A", "Ix", "Z"},
		Calc: func(in map[string]float64, _ card.Inputs) card.Result {
			d := in["D"]
			if d < 0 {
				return card.Errf("negative diameter: D=%g", d)
			}
			return card.Ok(map[string]float64{
				"A":  math.Pi * d * d / 4,
				"Ix": math.Pi * math.Pow(d, 4) / 64,
				"Z":  math.Pi * d * d * d / 32,
			})
		},
	}
}
