package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/girder/internal/engine"
	"github.com/roach88/girder/internal/formula"
	"github.com/roach88/girder/internal/project"
)

// readDocument loads and validates a project file. The codec is chosen
// by extension: .json is JSON, everything else is YAML.
func readDocument(path string) (*project.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot read project file", err)
	}

	var doc *project.Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = project.DecodeJSON(data)
	} else {
		doc, err = project.DecodeYAML(data)
	}
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("invalid project file %s", path), err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// writeDocument renders the document in the codec matching the path's
// extension and writes it.
func writeDocument(path string, doc *project.Document) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = doc.EncodeJSON()
	} else {
		data, err = doc.EncodeYAML()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WrapExitError(ExitCommandError, "cannot write project file", err)
	}
	return nil
}

// buildSheet constructs a sheet over the production catalog from a
// validated document. The constructor runs the initial pass.
func buildSheet(doc *project.Document) (*engine.Sheet, error) {
	sheet, err := engine.NewSheetFrom(formula.Catalog(), doc.ToCards())
	if err != nil {
		return nil, WrapExitError(ExitFailure, "cannot build sheet", err)
	}
	return sheet, nil
}
