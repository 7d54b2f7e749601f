package hilite

import (
	"fmt"

	"github.com/gopatchy/hilite/pkg/errors"
)

var (
	// Base error; every error in hilite inherits from this
	Err = errors.Err

	// Format and system errors
	ErrDecode         = errors.ErrDecode
	ErrEncode         = errors.ErrEncode
	ErrInvalidType    = errors.ErrInvalidType
	ErrMissingFile    = errors.ErrMissingFile
	ErrUnknownFormat  = errors.ErrUnknownFormat
	ErrInvalidGrammar = errors.ErrInvalidGrammar
	ErrInvalidOption  = errors.ErrInvalidOption

	// Lookup and registration errors
	ErrUnknownLanguage      = errors.ErrUnknownLanguage
	ErrLanguageRegistration = errors.ErrLanguageRegistration

	// Base grammar construction error
	ErrConstruction = errors.ErrConstruction

	// Specific grammar construction errors
	ErrInvalidPattern        = errors.ErrInvalidPattern
	ErrMatchWithBeginEnd     = errors.ErrMatchWithBeginEnd
	ErrBeforeMatchWithStarts = errors.ErrBeforeMatchWithStarts
	ErrMultiClass            = errors.ErrMultiClass
	ErrSelfAtTopLevel        = errors.ErrSelfAtTopLevel
	ErrSubLanguage           = errors.ErrSubLanguage

	// Parse-time errors
	ErrIllegalLexeme  = errors.ErrIllegalLexeme
	ErrZeroWidthMatch = errors.ErrZeroWidthMatch
	ErrRunawayLoop    = errors.ErrRunawayLoop

	// Code block errors
	ErrUnescapedHTML = errors.ErrUnescapedHTML
)

// IllegalError describes an illegal match that aborted a pass.
type IllegalError struct {
	Lexeme string
	Mode   string
	Index  int

	// Up to 100 characters either side of Index
	Context string
}

func (e *IllegalError) Error() string {
	mode := e.Mode
	if mode == "" {
		mode = "<unnamed>"
	}

	return fmt.Sprintf("Illegal lexeme %q for mode %q at %d (%s)", e.Lexeme, mode, e.Index, ErrIllegalLexeme)
}

func (e *IllegalError) Unwrap() error {
	return ErrIllegalLexeme
}

// HTMLInjectionError is returned when a code block carries child elements
// and Options.ThrowUnescapedHTML is set.
type HTMLInjectionError struct {
	HTML string
}

func (e *HTMLInjectionError) Error() string {
	return ErrUnescapedHTML.Error()
}

func (e *HTMLInjectionError) Unwrap() error {
	return ErrUnescapedHTML
}
