package edit

import (
	"fmt"
	"os"
	"strings"

	"github.com/rlm-dev/rlm/internal/langmap"
	"github.com/rlm-dev/rlm/internal/rlmerr"
)

// InsertPosition names where inserted code lands in a file.
type InsertPosition struct {
	Top        bool
	Bottom     bool
	BeforeLine int // 1-based; 0 means unset
	AfterLine  int // 1-based; 0 means unset
}

// AtTop returns a Top insert position.
func AtTop() InsertPosition { return InsertPosition{Top: true} }

// AtBottom returns a Bottom insert position.
func AtBottom() InsertPosition { return InsertPosition{Bottom: true} }

// Before returns a BeforeLine insert position.
func Before(line int) InsertPosition { return InsertPosition{BeforeLine: line} }

// After returns an AfterLine insert position.
func After(line int) InsertPosition { return InsertPosition{AfterLine: line} }

// InsertCode reads filePath, applies the insertion, validates the result,
// and writes it atomically.
func InsertCode(guard *Guard, filePath string, pos InsertPosition, code string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", rlmerr.FileNotFound(filePath)
	}

	modified, err := ApplyInsertion(string(data), pos, code)
	if err != nil {
		return "", err
	}

	lang := langmap.ExtToLang(extOf(filePath))
	if err := guard.ValidateAndWrite(lang, modified, filePath); err != nil {
		return "", err
	}
	return modified, nil
}

// ApplyInsertion computes the result of inserting code into source at pos,
// without touching disk.
func ApplyInsertion(source string, pos InsertPosition, code string) (string, error) {
	switch {
	case pos.Top:
		if source == "" {
			return code, nil
		}
		return code + "\n" + source, nil

	case pos.Bottom:
		if source == "" {
			return code, nil
		}
		if !strings.HasSuffix(source, "\n") {
			return source + "\n" + code, nil
		}
		return source + code, nil

	case pos.BeforeLine > 0:
		lines := strings.Split(source, "\n")
		idx := pos.BeforeLine - 1
		if idx > len(lines) {
			return "", rlmerr.Other(fmt.Sprintf("line %d is beyond file length (%d)", pos.BeforeLine, len(lines)))
		}
		out := make([]string, 0, len(lines)+1)
		for i, l := range lines {
			if i == idx {
				out = append(out, code)
			}
			out = append(out, l)
		}
		if idx == len(lines) {
			out = append(out, code)
		}
		return strings.Join(out, "\n"), nil

	case pos.AfterLine > 0:
		lines := strings.Split(source, "\n")
		idx := pos.AfterLine - 1
		if idx >= len(lines) {
			return "", rlmerr.Other(fmt.Sprintf("line %d is beyond file length (%d)", pos.AfterLine, len(lines)))
		}
		out := make([]string, 0, len(lines)+1)
		for i, l := range lines {
			out = append(out, l)
			if i == idx {
				out = append(out, code)
			}
		}
		return strings.Join(out, "\n"), nil

	default:
		return "", rlmerr.Other("no insert position specified")
	}
}
