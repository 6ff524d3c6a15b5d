package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AddFields appends the named fields to a model unless already present.
func (p *Package) AddFields(modelID int64, names []string) error {
	model, ok := p.Models[modelID]
	if !ok {
		return fmt.Errorf("model %d not found", modelID)
	}

	existing := make(map[string]bool, len(model.Fields))
	for _, f := range model.Fields {
		existing[f.Name] = true
	}

	template := Field{Font: "Arial", Size: 20}
	if n := len(model.Fields); n > 0 {
		template = model.Fields[n-1]
	}

	next := len(model.Fields)
	for _, name := range names {
		if existing[name] {
			continue
		}
		model.Fields = append(model.Fields, newField(template, name, next))
		existing[name] = true
		next++
	}

	return nil
}

// SetFields sets note fields by name. Every name must exist on the model.
func (p *Package) SetFields(note *Note, values map[string]string) error {
	model := p.GetModel(note)
	if model == nil {
		return fmt.Errorf("model not found for note %d", note.ID)
	}

	ords := make(map[string]int, len(model.Fields))
	for _, f := range model.Fields {
		ords[f.Name] = f.Ord
	}

	for len(note.Fields) < len(model.Fields) {
		note.Fields = append(note.Fields, "")
	}

	for name, value := range values {
		ord, ok := ords[name]
		if !ok {
			return fmt.Errorf("note %d: model %q has no field %q", note.ID, model.Name, name)
		}
		note.Fields[ord] = value
	}

	note.RawFlds = strings.Join(note.Fields, fieldSeparator)
	note.Mod = time.Now().Unix()

	return nil
}

// SaveAs writes the collection back and zips it to outputPath.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.updateModels(); err != nil {
		return err
	}
	if err := p.updateNotes(); err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	err = filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}
		return addToZip(zw, filepath.ToSlash(rel), path)
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("creating zip: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing zip: %w", err)
	}
	return nil
}

func addToZip(zw *zip.Writer, name, path string) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

// updateModels rewrites the models JSON in the col table.
func (p *Package) updateModels() error {
	models := make(map[string]*Model, len(p.Models))
	for id, m := range p.Models {
		models[strconv.FormatInt(id, 10)] = m
	}

	data, err := json.Marshal(models)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}

	if _, err := p.db.Exec("UPDATE col SET models = ?", string(data)); err != nil {
		return fmt.Errorf("updating models: %w", err)
	}
	return nil
}

// updateNotes writes every note's fields back to the notes table.
func (p *Package) updateNotes() error {
	for _, n := range p.Notes {
		n.CSum = checksum(n.SFLD)

		_, err := p.db.Exec(`UPDATE notes SET mod = ?, flds = ?, sfld = ?, csum = ? WHERE id = ?`,
			n.Mod, n.RawFlds, n.SFLD, n.CSum, n.ID)
		if err != nil {
			return fmt.Errorf("updating note %d: %w", n.ID, err)
		}
	}
	return nil
}

// checksum is Anki's note checksum: the first 8 hex digits of the SHA-1
// of the HTML-stripped sort field.
func checksum(sortField string) int64 {
	sum := sha1.Sum([]byte(StripHTML(sortField)))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}
