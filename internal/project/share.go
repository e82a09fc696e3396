package project

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Share-link token format:
//
//	gdr1:<base64url(deflate(json))>.<fingerprint[:8]>
//
// The fingerprint suffix is an integrity check, not a security
// feature: it catches truncated or mangled links before the document
// reaches validation.
const (
	sharePrefix   = "gdr1:"
	shareFPLength = 8
)

// EncodeShare renders a document as a compressed share-link token.
func EncodeShare(doc *Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode share: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("encode share: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("encode share: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("encode share: %w", err)
	}

	fp, err := Fingerprint(doc)
	if err != nil {
		return "", err
	}

	token := sharePrefix +
		base64.RawURLEncoding.EncodeToString(buf.Bytes()) +
		"." + fp[:shareFPLength]
	return token, nil
}

// DecodeShare parses a share-link token back into a validated
// document. Fails on a bad prefix, a corrupt payload, a fingerprint
// mismatch, or a document that does not validate.
func DecodeShare(token string) (*Document, error) {
	rest, ok := strings.CutPrefix(token, sharePrefix)
	if !ok {
		return nil, fmt.Errorf("decode share: not a %q token", sharePrefix)
	}

	payload, fp, ok := strings.Cut(rest, ".")
	if !ok {
		return nil, fmt.Errorf("decode share: missing fingerprint suffix")
	}

	compressed, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode share: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode share: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("decode share: %w", err)
	}

	doc, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}

	want, err := Fingerprint(doc)
	if err != nil {
		return nil, err
	}
	if want[:shareFPLength] != fp {
		return nil, fmt.Errorf("decode share: fingerprint mismatch")
	}
	return doc, nil
}
