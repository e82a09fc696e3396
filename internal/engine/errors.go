package engine

import "fmt"

// MutationError reports a rejected mutation. Mutations are validated
// before they touch the card list, so a rejected mutation leaves the
// sheet exactly as it was and triggers no recalculation pass.
type MutationError struct {
	Code    MutationErrorCode
	Message string
	CardID  string
}

// MutationErrorCode categorizes mutation failures.
type MutationErrorCode string

const (
	// ErrCodeUnknownType indicates a create with an unregistered type id.
	ErrCodeUnknownType MutationErrorCode = "UNKNOWN_TYPE"

	// ErrCodeUnknownCard indicates a mutation naming a card id not in the sheet.
	ErrCodeUnknownCard MutationErrorCode = "UNKNOWN_CARD"

	// ErrCodeBadOrder indicates a reorder that is not a permutation of the sheet.
	ErrCodeBadOrder MutationErrorCode = "BAD_ORDER"
)

func (e *MutationError) Error() string {
	if e.CardID != "" {
		return fmt.Sprintf("%s: %s (card=%s)", e.Code, e.Message, e.CardID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func unknownCard(id string) *MutationError {
	return &MutationError{Code: ErrCodeUnknownCard, Message: "card not found", CardID: id}
}
