package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/domain/entity"
)

// LoadDraft reads a YAML order draft from path
func LoadDraft(path string) (*entity.Expedicao, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open draft: %w", err)
	}
	defer f.Close()
	return DecodeDraft(f)
}

// DecodeDraft decodes a YAML order draft. Emissao and item numbers are not
// read: the form stamps them itself.
func DecodeDraft(r io.Reader) (*entity.Expedicao, error) {
	var draft entity.Expedicao
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

// ApplyDraft fills the form from draft through the controller operations.
// Empty draft values keep the form's current value.
func ApplyDraft(fc *service.FormController, draft *entity.Expedicao) error {
	for _, field := range entity.Fields() {
		value := field.Get(draft)
		if field != entity.FieldClienteRetira && value == "" {
			continue
		}
		if err := fc.UpdateField(field, value); err != nil {
			return err
		}
	}

	for i := range draft.Itens {
		if i >= len(fc.Order().Itens) {
			fc.AddItem()
		}
		for _, field := range entity.ItemFields() {
			value := field.Get(&draft.Itens[i])
			if value == "" {
				continue
			}
			if err := fc.UpdateItem(i, field, value); err != nil {
				return err
			}
		}
	}
	return nil
}
