package errors

import "fmt"

var (
	// Base error; every error in hilite inherits from this
	Err = fmt.Errorf("hilite error")

	// Format and system errors
	ErrDecode         = fmt.Errorf("decoding error (%w)", Err)
	ErrEncode         = fmt.Errorf("encoding error (%w)", Err)
	ErrInvalidType    = fmt.Errorf("invalid type (%w)", Err)
	ErrMissingFile    = fmt.Errorf("missing file (%w)", Err)
	ErrUnknownFormat  = fmt.Errorf("unknown format (%w)", Err)
	ErrInvalidGrammar = fmt.Errorf("invalid grammar file (%w)", Err)
	ErrInvalidOption  = fmt.Errorf("invalid option (%w)", Err)

	// Lookup and registration errors
	ErrUnknownLanguage      = fmt.Errorf("unknown language (%w)", Err)
	ErrLanguageRegistration = fmt.Errorf("language could not be registered (%w)", Err)

	// Base grammar construction error
	ErrConstruction = fmt.Errorf("grammar construction error (%w)", Err)

	// Specific grammar construction errors
	ErrInvalidPattern        = fmt.Errorf("invalid pattern (%w)", ErrConstruction)
	ErrMatchWithBeginEnd     = fmt.Errorf("begin & end are not supported with match (%w)", ErrConstruction)
	ErrBeforeMatchWithStarts = fmt.Errorf("beforeMatch cannot be used with starts (%w)", ErrConstruction)
	ErrMultiClass            = fmt.Errorf("invalid multi-capture scope (%w)", ErrConstruction)
	ErrSelfAtTopLevel        = fmt.Errorf("contains self is not supported at the top level of a language (%w)", ErrConstruction)
	ErrSubLanguage           = fmt.Errorf("invalid subLanguage (%w)", ErrConstruction)

	// Parse-time errors
	ErrIllegalLexeme  = fmt.Errorf("illegal lexeme (%w)", Err)
	ErrZeroWidthMatch = fmt.Errorf("0 width match regex (%w)", Err)
	ErrRunawayLoop    = fmt.Errorf("potential infinite loop, way more iterations than matches (%w)", Err)

	// Code block errors
	ErrUnescapedHTML = fmt.Errorf("code block includes unescaped HTML (%w)", Err)
)
