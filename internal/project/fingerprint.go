package project

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for document fingerprints. The version suffix enables
// future algorithm migration without colliding with old hashes.
const fingerprintDomain = "girder/document/v1"

// Fingerprint computes a content hash of a document.
//
// The hash is SHA-256 over domain + 0x00 + the document's compact JSON
// form. The null separator prevents domain/data boundary ambiguity.
// Go's json.Marshal emits struct fields in declaration order and map
// keys sorted, so the serialization - and therefore the hash - is
// deterministic for equal documents. Free-text fields (name, aliases)
// are NFC normalized before hashing so visually identical documents
// typed on different platforms fingerprint the same.
//
// The store uses fingerprints to dedup identical revisions; the
// share-link codec embeds a fingerprint prefix as an integrity check.
func Fingerprint(doc *Document) (string, error) {
	data, err := json.Marshal(normalizeText(doc))
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// normalizeText returns a copy of the document with name and aliases
// in NFC form. Structural fields (ids, keys, values) pass through
// untouched.
func normalizeText(doc *Document) *Document {
	out := &Document{Name: norm.NFC.String(doc.Name), Cards: make([]CardDoc, len(doc.Cards))}
	copy(out.Cards, doc.Cards)
	for i := range out.Cards {
		out.Cards[i].Alias = norm.NFC.String(out.Cards[i].Alias)
	}
	return out
}
