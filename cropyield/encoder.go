package cropyield

import (
	"fmt"
	"sort"
)

// LabelEncoder assigns each label of a closed vocabulary the zero-based rank
// it has in the lexicographically sorted vocabulary. Insertion order is
// irrelevant: {"Wheat", "Rice", "Bajra"} encodes Bajra=0, Rice=1, Wheat=2.
type LabelEncoder struct {
	field   string
	classes []string
	codes   map[string]int
}

// NewLabelEncoder fits an encoder on vocab. The vocabulary must be non-empty
// and free of empty or duplicate labels.
func NewLabelEncoder(field string, vocab []string) (*LabelEncoder, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("%w: empty %s vocabulary", ErrInvalidCatalog, field)
	}
	classes := make([]string, len(vocab))
	copy(classes, vocab)
	sort.Strings(classes)
	codes := make(map[string]int, len(classes))
	for i, label := range classes {
		if label == "" {
			return nil, fmt.Errorf("%w: empty label in %s vocabulary", ErrInvalidCatalog, field)
		}
		if _, dup := codes[label]; dup {
			return nil, fmt.Errorf("%w: duplicate %s %q", ErrInvalidCatalog, field, label)
		}
		codes[label] = i
	}
	return &LabelEncoder{field: field, classes: classes, codes: codes}, nil
}

// Encode returns the code for label.
func (e *LabelEncoder) Encode(label string) (int, error) {
	code, ok := e.codes[label]
	if !ok {
		return 0, &UnknownLabelError{Field: e.field, Label: label}
	}
	return code, nil
}

// Decode returns the label for code.
func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("%w: %s code %d out of range [0,%d)", ErrUnknownLabel, e.field, code, len(e.classes))
	}
	return e.classes[code], nil
}

// Contains reports whether label belongs to the vocabulary.
func (e *LabelEncoder) Contains(label string) bool {
	_, ok := e.codes[label]
	return ok
}

// Classes returns the vocabulary in code order.
func (e *LabelEncoder) Classes() []string {
	return cloneStrings(e.classes)
}

// Len returns the vocabulary size.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// Field names the categorical input this encoder serves.
func (e *LabelEncoder) Field() string {
	return e.field
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
