package item

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a validation failure.
type ErrorCode string

const (
	ErrCodeRequired    ErrorCode = "required"
	ErrCodeTooLong     ErrorCode = "too_long"
	ErrCodeInvalidEnum ErrorCode = "invalid_enum"
	ErrCodeOutOfRange  ErrorCode = "out_of_range"
	ErrCodeInvalid     ErrorCode = "invalid"
)

// ValidationError describes why one field of an item is invalid.
type ValidationError struct {
	Field   string
	Value   interface{}
	Code    ErrorCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failing field of one item.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// FieldValidator checks a single aspect of an item.
type FieldValidator interface {
	ValidateField(item *Item) *ValidationError
}

var defaultValidators = []FieldValidator{
	&TitleValidator{},
	&StatusValidator{},
	&PriorityValidator{},
	&EnergyValidator{},
	&WaitingForValidator{},
}

// ValidateItem runs all field validators and returns nil when the item is valid.
func ValidateItem(item *Item) error {
	var errs ValidationErrors
	for _, v := range defaultValidators {
		if err := v.ValidateField(item); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
