package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"syntra-pos/internal/database/models"
)

// Counts maps a product id (decimal string) to its physically counted quantity.
// Values may arrive as JSON numbers or numeric strings; blanks and nulls mean "not counted".
type Counts map[string]int

func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: counts must be an object of product id to quantity", models.ErrValidation)
	}

	out := make(Counts, len(raw))
	for key, value := range raw {
		var text string
		switch v := value.(type) {
		case nil:
			continue
		case json.Number:
			text = v.String()
		case string:
			text = strings.TrimSpace(v)
			if text == "" {
				continue
			}
		default:
			return fmt.Errorf("%w: count for product %s must be a number", models.ErrValidation, key)
		}

		n, err := parseCount(text)
		if err != nil {
			return fmt.Errorf("%w: count for product %s: %v", models.ErrValidation, key, err)
		}
		out[strings.TrimSpace(key)] = n
	}

	*c = out
	return nil
}

func parseCount(text string) (int, error) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", text)
	}
	return int(f), nil
}
