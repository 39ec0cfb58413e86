package item

import (
	"fmt"
	"strings"
)

// TitleValidator validates item title
type TitleValidator struct{}

func (v *TitleValidator) ValidateField(item *Item) *ValidationError {
	title := strings.TrimSpace(item.Title)

	if title == "" {
		return &ValidationError{
			Field:   "title",
			Value:   item.Title,
			Code:    ErrCodeRequired,
			Message: "title is required",
		}
	}

	const maxTitleLength = 1024
	if len(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Value:   item.Title,
			Code:    ErrCodeTooLong,
			Message: fmt.Sprintf("title exceeds maximum length of %d characters", maxTitleLength),
		}
	}

	return nil
}

// StatusValidator validates item status enum
type StatusValidator struct{}

func (v *StatusValidator) ValidateField(item *Item) *ValidationError {
	if item.Status.IsValid() {
		return nil
	}

	return &ValidationError{
		Field:   "status",
		Value:   item.Status,
		Code:    ErrCodeInvalidEnum,
		Message: fmt.Sprintf("invalid status value: %s", item.Status),
	}
}

// PriorityValidator validates priority range (1-4)
type PriorityValidator struct{}

func (v *PriorityValidator) ValidateField(item *Item) *ValidationError {
	if !IsValidPriority(item.Priority) {
		return &ValidationError{
			Field:   "priority",
			Value:   item.Priority,
			Code:    ErrCodeOutOfRange,
			Message: fmt.Sprintf("priority must be between %d and %d", MinPriority, MaxPriority),
		}
	}

	return nil
}

// EnergyValidator validates energy enum
type EnergyValidator struct{}

func (v *EnergyValidator) ValidateField(item *Item) *ValidationError {
	switch item.Energy {
	case EnergyNone, EnergyLow, EnergyMedium, EnergyHigh:
		return nil
	}

	return &ValidationError{
		Field:   "energy",
		Value:   item.Energy,
		Code:    ErrCodeInvalidEnum,
		Message: fmt.Sprintf("invalid energy value: %s", item.Energy),
	}
}

// WaitingForValidator requires a delegate for waiting_for items.
type WaitingForValidator struct{}

func (v *WaitingForValidator) ValidateField(item *Item) *ValidationError {
	const maxPersonLength = 100
	if len(item.WaitingFor) > maxPersonLength {
		return &ValidationError{
			Field:   "waiting",
			Value:   item.WaitingFor,
			Code:    ErrCodeTooLong,
			Message: fmt.Sprintf("waiting for exceeds maximum length of %d characters", maxPersonLength),
		}
	}
	if item.Status == StatusWaitingFor && strings.TrimSpace(item.WaitingFor) == "" {
		return &ValidationError{
			Field:   "waiting",
			Value:   item.WaitingFor,
			Code:    ErrCodeRequired,
			Message: "waiting for person is required for waiting_for items",
		}
	}
	return nil
}
