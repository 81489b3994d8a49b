package dataset

import (
	"errors"
	"fmt"
)

// InputErrorKind 区分输入错误的来源。
type InputErrorKind string

const (
	InputMissing InputErrorKind = "missing" // 文件不存在或无法打开
	InputEmpty   InputErrorKind = "empty"   // 没有表头或没有数据行
	InputColumn  InputErrorKind = "column"  // 缺少必需的列
)

var (
	// ErrAlreadyRebased is returned when Rebase is invoked a second time.
	ErrAlreadyRebased = errors.New("dataset already rebased")
	// ErrNotRebased is returned when a time transform runs before Rebase.
	ErrNotRebased = errors.New("dataset not rebased")
)

// InputError reports a file that is missing, empty, or lacks a required column.
type InputError struct {
	Path   string
	Kind   InputErrorKind
	Column string
	Err    error
}

func (e *InputError) Error() string {
	switch e.Kind {
	case InputColumn:
		return fmt.Sprintf("input %s: missing column %q", e.Path, e.Column)
	case InputEmpty:
		if e.Err != nil {
			return fmt.Sprintf("input %s: empty: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("input %s: empty", e.Path)
	default:
		return fmt.Sprintf("input %s: %v", e.Path, e.Err)
	}
}

func (e *InputError) Unwrap() error { return e.Err }

// FormatError reports a cell that could not be parsed as a number.
// Row is the 1-based line in the file (the header is line 1), blank lines included.
type FormatError struct {
	Path   string
	Row    int
	Column string
	Raw    string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("input %s row %d column %s: cannot parse %q: %v", e.Path, e.Row, e.Column, e.Raw, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
