package unified

import (
	"sync"

	"github.com/interpretive-systems/difftable/internal/diffview"
)

// Memo defers the unified rendering of one table until Text is first called and keeps the result for the lifetime of the Memo.
type Memo struct {
	table  diffview.Table
	opts   Options
	render func(diffview.Table, Options) (string, error)

	once sync.Once
	text string
	err  error
}

// NewMemo returns a Memo for t. Nothing is rendered yet.
func NewMemo(t diffview.Table, opts Options) *Memo {
	return &Memo{table: t, opts: opts, render: RenderTable}
}

// Text returns the unified text of the table, rendering it on the first call.
func (m *Memo) Text() (string, error) {
	m.once.Do(func() {
		m.text, m.err = m.render(m.table, m.opts)
	})
	return m.text, m.err
}
