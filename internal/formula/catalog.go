// Package formula supplies the standard card type catalog: section
// properties, beam mechanics, and verification checks.
//
// From the engine's point of view every calculate function here is an
// opaque pure collaborator - the engine never inspects formulas, it
// only dispatches to them. All functions are pure and return explicit
// Results; a formula that cannot produce a meaningful number (divide
// by zero, negative dimension) fails its own card and nothing else.
package formula

import (
	"github.com/roach88/girder/internal/catalog"
)

// Type ids of the standard catalog.
const (
	TypeSectionRectangle = "section.rectangle"
	TypeSectionCircle    = "section.circle"
	TypeBeam             = "beam"
	TypeCheckBending     = "check.bending"
	TypeSum              = "sum"
)

// Catalog builds the standard dispatch table. Constructed once at
// startup and passed by reference into the engine.
func Catalog() *catalog.Catalog {
	return catalog.MustNew(
		sectionRectangle(),
		sectionCircle(),
		beam(),
		checkBending(),
		sum(),
	)
}
