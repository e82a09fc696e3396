package card

// Card is a single calculation unit in a sheet.
//
// INVARIANTS:
//   - ID is unique within a sheet and stable for the card's lifetime.
//   - Outputs and Error are set atomically per recalculation pass:
//     either Outputs reflects a successful computation and Error is
//     empty, or Outputs is empty and Error carries the failure message.
//   - Outputs is fully owned by the engine and replaced wholesale on
//     every pass; callers must not retain references across passes.
type Card struct {
	ID      string
	Type    string
	Alias   string // free-text label, no invariant
	Inputs  Inputs
	Outputs map[string]float64
	Error   string
}

// Clone returns a deep copy of the card. Used when handing snapshots
// to callers so external mutation cannot corrupt engine state.
func (c *Card) Clone() *Card {
	out := &Card{
		ID:     c.ID,
		Type:   c.Type,
		Alias:  c.Alias,
		Inputs: c.Inputs.Clone(),
		Error:  c.Error,
	}
	if c.Outputs != nil {
		out.Outputs = make(map[string]float64, len(c.Outputs))
		for k, v := range c.Outputs {
			out.Outputs[k] = v
		}
	}
	return out
}

// Output returns the named output value and whether the card produced
// that key in its last pass.
func (c *Card) Output(key string) (float64, bool) {
	if c.Outputs == nil {
		return 0, false
	}
	v, ok := c.Outputs[key]
	return v, ok
}
