package piratebay

import (
	"iter"
)

// Category is a media category code. Codes group hierarchically by their
// hundreds digit: 201 (Movies) belongs to 200 (Video).
type Category struct {
	code uint16
}

// NewCategory validates a code against the category table. It reports false
// for codes the table does not contain; absence is expected, not an error.
func NewCategory(code uint16) (Category, bool) {
	for _, entry := range categoryTable {
		if entry.code == code {
			return Category{code: code}, true
		}
	}
	return Category{}, false
}

// Categories yields every category in the table, in table order. The
// sequence is finite and can be iterated any number of times.
func Categories() iter.Seq[Category] {
	return func(yield func(Category) bool) {
		for _, entry := range categoryTable {
			if !yield(Category{code: entry.code}) {
				return
			}
		}
	}
}

// Code returns the numeric category code.
func (c Category) Code() uint16 {
	return c.code
}

// Name returns the display name for the code, falling back to the
// hundreds-digit parent category when the exact code is not in the table,
// and to "Unknown" when neither is.
func (c Category) Name() string {
	if name, ok := lookupCategoryName(c.code); ok {
		return name
	}
	if name, ok := lookupCategoryName(c.code / 100 * 100); ok {
		return name
	}
	return "Unknown"
}

func lookupCategoryName(code uint16) (string, bool) {
	// Linear scan; the table is a few dozen entries.
	for _, entry := range categoryTable {
		if entry.code == code {
			return entry.name, true
		}
	}
	return "", false
}

// UnmarshalJSON accepts the code as a JSON number or numeric string. Codes
// arriving from the API are trusted without table validation.
func (c *Category) UnmarshalJSON(data []byte) error {
	code, err := flexUint16(data)
	if err != nil {
		return err
	}
	c.code = code
	return nil
}
