package lexer

import (
	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// maxTokenLength bounds a single token; longer input is reported and skipped.
const maxTokenLength = 4096

type Options struct {
	// Reporter может быть nil: ошибки тогда теряются, но лексинг продолжается
	// и ошибочные фрагменты всё равно становятся Invalid токенами.
	Reporter diag.Reporter
}

// report начинает ошибку лексера; вызывающий добавляет заметки и делает Emit.
func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) *diag.Builder {
	return diag.Report(lx.opts.Reporter, diag.SevError, code, sp, msg)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.report(code, sp, msg).Emit()
}
