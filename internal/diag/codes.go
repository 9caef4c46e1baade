package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004
	LexTokenTooLong       Code = 1005
	LexCharTooLong        Code = 1006
	LexEmptyChar          Code = 1007
	LexBadEscape          Code = 1008

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpected        Code = 2001
	SynExpected          Code = 2002
	SynUnclosedDelimiter Code = 2003
	SynTrailingInput     Code = 2004
	SynUnexpectedEOF     Code = 2005

	// Семантические (валидация значений после разбора)
	SemInfo           Code = 3000
	SemValidation     Code = 3001
	SemOutOfRange     Code = 3002
	SemDuplicateKey   Code = 3003
	SemDivisionByZero Code = 3004
	SemUndefinedName  Code = 3005

	// Ошибки построения грамматики
	GrmInfo           Code = 4000
	GrmZeroWidth      Code = 4001
	GrmRecursionLimit Code = 4002
	GrmCrossUnitSpan  Code = 4003

	IOLoadFileError Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexUnterminatedChar:   "Unterminated character literal",
		LexBadNumber:          "Bad number literal",
		LexTokenTooLong:       "Token too long",
		LexCharTooLong:        "Character literal holds more than one character",
		LexEmptyChar:          "Empty character literal",
		LexBadEscape:          "Unknown escape sequence",
		SynInfo:               "Syntax information",
		SynUnexpected:         "Unexpected input",
		SynExpected:           "Expected input not found",
		SynUnclosedDelimiter:  "Unclosed delimiter",
		SynTrailingInput:      "Trailing input after complete parse",
		SynUnexpectedEOF:      "Unexpected end of input",
		SemInfo:               "Semantic information",
		SemValidation:         "Value rejected by validation",
		SemOutOfRange:         "Value out of range",
		SemDuplicateKey:       "Duplicate key",
		SemDivisionByZero:     "Division by zero",
		SemUndefinedName:      "Undefined name",
		GrmInfo:               "Grammar information",
		GrmZeroWidth:          "Repetition of a zero-width parser",
		GrmRecursionLimit:     "Recursion limit exceeded",
		GrmCrossUnitSpan:      "Spans from different units combined",
		IOLoadFileError:       "I/O load file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GRM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
