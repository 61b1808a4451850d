package models

import "sort"

// Field types understood by the form renderer
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
	FieldTypeCountry  = "country"
)

// Field groups of a checkout form
const (
	GroupBilling  = "billing"
	GroupShipping = "shipping"
	GroupAccount  = "account"
	GroupOrder    = "order"
)

// FieldOption is one choice of a select field. Options render in slice order.
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is a single form field definition
type Field struct {
	Type             string            `json:"type,omitempty"`
	Label            string            `json:"label"`
	Required         bool              `json:"required"`
	Class            []string          `json:"class,omitempty"`
	Priority         int               `json:"priority"`
	Validate         []string          `json:"validate,omitempty"`
	Default          string            `json:"default,omitempty"`
	Placeholder      string            `json:"placeholder,omitempty"`
	Options          []FieldOption     `json:"options,omitempty"`
	CustomAttributes map[string]string `json:"custom_attributes,omitempty"`
}

// FieldSet maps field keys to definitions within one group.
type FieldSet map[string]Field

// FieldSchema maps group names to their field sets.
type FieldSchema map[string]FieldSet

// NamedField pairs a field with its key for ordered rendering.
type NamedField struct {
	Key string `json:"key"`
	Field
}

// Ordered returns the fields sorted by priority, ties broken by key.
func (s FieldSet) Ordered() []NamedField {
	out := make([]NamedField, 0, len(s))
	for k, f := range s {
		out = append(out, NamedField{Key: k, Field: f})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Clone copies the schema so filters can mutate it freely.
func (s FieldSchema) Clone() FieldSchema {
	out := make(FieldSchema, len(s))
	for group, set := range s {
		cp := make(FieldSet, len(set))
		for k, f := range set {
			cp[k] = f
		}
		out[group] = cp
	}
	return out
}
