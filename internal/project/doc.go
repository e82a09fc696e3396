// Package project is the persistence boundary of girder.
//
// A Document is the plain-record form of a sheet: project metadata
// plus the card list, serializable to YAML or JSON. Every document
// that crosses the boundary inward - file load, share-link decode,
// store read - is validated against the embedded CUE schema and the
// data model invariants before it is handed to the engine. The engine
// itself neither defines nor depends on any wire format.
package project

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/girder/internal/card"
)

// Document is the serialized form of a project.
type Document struct {
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Cards []CardDoc `json:"cards" yaml:"cards"`
}

// CardDoc is the serialized form of one card. Outputs and Error are
// carried for human inspection of saved files; the engine rewrites
// both on the first pass after load.
type CardDoc struct {
	ID      string             `json:"id" yaml:"id"`
	Type    string             `json:"type" yaml:"type"`
	Alias   string             `json:"alias,omitempty" yaml:"alias,omitempty"`
	Inputs  map[string]SlotDoc `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs map[string]float64 `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Error   string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// SlotDoc is the wire form of the InputSlot tagged union: exactly one
// of Value or Ref is set.
type SlotDoc struct {
	Value *string `json:"value,omitempty" yaml:"value,omitempty"`
	Ref   *RefDoc `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// RefDoc is the wire form of a reference slot.
type RefDoc struct {
	Card   string `json:"card" yaml:"card"`
	Output string `json:"output" yaml:"output"`
}

// FromCards builds a document from an engine snapshot.
func FromCards(name string, cards []*card.Card) *Document {
	doc := &Document{Name: name, Cards: make([]CardDoc, len(cards))}
	for i, c := range cards {
		cd := CardDoc{
			ID:    c.ID,
			Type:  c.Type,
			Alias: c.Alias,
			Error: c.Error,
		}
		if len(c.Inputs) > 0 {
			cd.Inputs = make(map[string]SlotDoc, len(c.Inputs))
			for key, slot := range c.Inputs {
				cd.Inputs[key] = slotToDoc(slot)
			}
		}
		if len(c.Outputs) > 0 {
			cd.Outputs = make(map[string]float64, len(c.Outputs))
			for key, v := range c.Outputs {
				cd.Outputs[key] = v
			}
		}
		doc.Cards[i] = cd
	}
	return doc
}

// Cards converts the document into engine cards. The document must
// have been validated first; Cards trusts its shape.
func (d *Document) ToCards() []*card.Card {
	cards := make([]*card.Card, len(d.Cards))
	for i, cd := range d.Cards {
		c := &card.Card{
			ID:     cd.ID,
			Type:   cd.Type,
			Alias:  cd.Alias,
			Inputs: card.Inputs{},
		}
		for key, slot := range cd.Inputs {
			c.Inputs[key] = slot.toSlot()
		}
		cards[i] = c
	}
	return cards
}

func slotToDoc(slot card.Slot) SlotDoc {
	switch s := slot.(type) {
	case card.Literal:
		raw := s.Raw
		return SlotDoc{Value: &raw}
	case card.Ref:
		return SlotDoc{Ref: &RefDoc{Card: s.Card, Output: s.Output}}
	default:
		return SlotDoc{}
	}
}

func (s SlotDoc) toSlot() card.Slot {
	if s.Ref != nil {
		return card.Ref{Card: s.Ref.Card, Output: s.Ref.Output}
	}
	if s.Value != nil {
		return card.Literal{Raw: *s.Value}
	}
	return nil
}

// EncodeJSON renders the document as indented JSON.
func (d *Document) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the document as YAML.
func (d *Document) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// DecodeJSON parses and validates a JSON document.
func DecodeJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeYAML parses and validates a YAML document.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
