package tabular

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"vizier/domain/core"
	"vizier/domain/table"
	apperrors "vizier/internal/errors"
)

// readJSON reads an array of flat objects. Column order follows the key
// order of the first object, which a plain map decode would destroy, so the
// first object is walked token by token. Keys appearing only in later
// objects are appended in first-seen order.
func (r *Reader) readJSON(id core.DatasetID) (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "opening JSON file")
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, apperrors.Wrap(err, "JSON file must hold an array of objects")
	}

	var order []string
	columns := make(map[string][]string)
	row := 0
	for dec.More() {
		obj, keys, err := decodeOrderedObject(dec)
		if err != nil {
			return nil, apperrors.Wrapf(err, "decoding JSON object %d", row)
		}
		for _, k := range keys {
			if _, ok := columns[k]; !ok {
				order = append(order, k)
				// Backfill earlier rows for a late-appearing key.
				columns[k] = make([]string, row)
			}
		}
		for _, k := range order {
			v, ok := obj[k]
			if !ok {
				v = table.Empty
			}
			columns[k] = append(columns[k], v)
		}
		row++
	}

	if row == 0 {
		return nil, apperrors.ValidationErrorf("JSON array holds no objects")
	}

	cols := make([]table.Column, len(order))
	for i, k := range order {
		cols[i] = table.Column{Name: k, Values: columns[k]}
	}
	return table.New(id, cols...), nil
}

// decodeOrderedObject decodes one flat object, returning values as strings
// plus the keys in document order.
func decodeOrderedObject(dec *json.Decoder) (map[string]string, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}
	obj := make(map[string]string)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		if d, ok := valTok.(json.Delim); ok && (d == '[' || d == '{') {
			// Nested structures are not tabular; skip them and record the
			// cell as missing rather than failing the whole file.
			if err := skipNested(dec); err != nil {
				return nil, nil, err
			}
			obj[key] = table.Empty
		} else {
			obj[key] = scalarToString(valTok)
		}
		keys = append(keys, key)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return obj, keys, nil
}

func scalarToString(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return table.Empty
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprintf("%v", tok)
}

// skipNested consumes tokens until the already-opened array or object
// closes.
func skipNested(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
