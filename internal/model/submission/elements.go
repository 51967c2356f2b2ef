package submission

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/pkg/errors"
)

// FieldForm is a form held in memory. Reset restores the defaults it was
// created with.
type FieldForm struct {
	mu       sync.Mutex
	defaults map[string]string
	values   map[string]string
}

func NewFieldForm(defaults map[string]string) *FieldForm {
	f := &FieldForm{defaults: copyFields(defaults)}
	f.values = copyFields(f.defaults)
	return f
}

// ParseFields reads name=value pairs. A repeated name keeps its last value.
func ParseFields(pairs []string) (map[string]string, error) {
	res := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("field %q is not in name=value form", pair)
		}
		res[name] = value
	}
	return res, nil
}

func (f *FieldForm) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
}

func (f *FieldForm) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyFields(f.values)
}

func (f *FieldForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = copyFields(f.defaults)
}

func copyFields(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// RowBuffer collects appended rows.
type RowBuffer struct {
	mu   sync.Mutex
	rows [][]string
}

func (b *RowBuffer) AppendRow(cells []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, append([]string(nil), cells...))
}

func (b *RowBuffer) Rows() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([][]string, len(b.rows))
	copy(res, b.rows)
	return res
}

var cellReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// WriterTable prints aligned rows to w.
type WriterTable struct {
	mu sync.Mutex
	tw *tabwriter.Writer
}

func NewWriterTable(w io.Writer, header ...string) *WriterTable {
	t := &WriterTable{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
	if len(header) > 0 {
		t.AppendRow(header)
	}
	return t
}

func (t *WriterTable) AppendRow(cells []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = cellReplacer.Replace(c)
	}
	_, _ = fmt.Fprintln(t.tw, strings.Join(escaped, "\t"))
}

// Flush writes buffered rows; columns are aligned across everything buffered.
func (t *WriterTable) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tw.Flush()
}

// WriterNotifier prints each notification on its own line.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, message string) {
	_, _ = fmt.Fprintln(n.W, message)
}

// MultiNotifier fans a notification out to every notifier.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, message string) {
	for _, n := range m {
		n.Notify(ctx, message)
	}
}

// NoopEvent is used by front ends that have no native submit action.
type NoopEvent struct{}

func (NoopEvent) PreventDefault() {}
