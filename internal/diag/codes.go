package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadRawString             Code = 1006
	LexTokenTooLong             Code = 1007

	// Структура скобок
	SynInfo                Code = 2000
	SynUnclosedDelimiter   Code = 2002
	SynMismatchedDelimiter Code = 2003
	SynStrayCloseDelimiter Code = 2004

	// Раскрытие атрибута
	ExpInfo                 Code = 3000
	ExpUnexpectedModifier   Code = 3001
	ExpExpectEnum           Code = 3002
	ExpMissingDiscriminant  Code = 3003
	ExpExpectStringLiteral  Code = 3004
	ExpUnexpectedVariantTok Code = 3005
	ExpExpectVariantIdent   Code = 3006
	ExpExpectEnumNameOrBody Code = 3007
	ExpAttributeWithoutItem Code = 3008
	ExpNestedAttribute      Code = 3009

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed number literal",
		LexUnterminatedChar:         "Unterminated character literal",
		LexBadRawString:             "Malformed raw string literal",
		LexTokenTooLong:             "Token exceeds maximum length",
		SynInfo:                     "Delimiter information",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynMismatchedDelimiter:      "Mismatched closing delimiter",
		SynStrayCloseDelimiter:      "Unexpected closing delimiter",
		ExpInfo:                     "Expansion information",
		ExpUnexpectedModifier:       "Unexpected token in attribute arguments",
		ExpExpectEnum:               "Expected an enum item",
		ExpMissingDiscriminant:      "Variant has no string discriminant",
		ExpExpectStringLiteral:      "Expected string literal",
		ExpUnexpectedVariantTok:     "Unexpected token in variant",
		ExpExpectVariantIdent:       "Expected variant identifier",
		ExpExpectEnumNameOrBody:     "Expected enum name or body",
		ExpAttributeWithoutItem:     "Attribute is not followed by an item",
		ExpNestedAttribute:          "Attribute on a nested item is not expanded",
		IOInfo:                      "I/O information",
		IOLoadFileError:             "Failed to load file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
