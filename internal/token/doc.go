// Package token defines the pre-tokenized input accepted by stream-mode parsing.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly (Start..End) in the unit it was lexed from.
//   - Punctuation is always a single character. Multi-character operators are
//     assembled by the parser from Joint punctuation (a Punct followed directly
//     by another Punct).
//   - Keywords are identifiers; a grammar decides which words are reserved.
//   - Whitespace survives as Space/Newline tokens so the original layout can be
//     reconstructed; stream sources may skip them.
package token
