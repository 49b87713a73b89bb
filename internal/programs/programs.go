// Package programs knows which file names the engine can execute. Matching is
// by extension only; validating the contents is the engine's job.
package programs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Architecture identifies the CPU core an executable targets.
type Architecture int

const (
	ArchNone Architecture = iota
	ArchIE32
	ArchIE64
	Arch6502
	ArchM68K
	ArchZ80
	ArchX86
)

func (a Architecture) String() string {
	switch a {
	case ArchIE32:
		return "IE32"
	case ArchIE64:
		return "IE64"
	case Arch6502:
		return "6502"
	case ArchM68K:
		return "M68K"
	case ArchZ80:
		return "Z80"
	case ArchX86:
		return "X86"
	default:
		return "none"
	}
}

// Detect maps a path's extension to its architecture, case-insensitively.
func Detect(path string) Architecture {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".iex", ".ie32":
		return ArchIE32
	case ".ie64":
		return ArchIE64
	case ".ie65":
		return Arch6502
	case ".ie68":
		return ArchM68K
	case ".ie80":
		return ArchZ80
	case ".ie86":
		return ArchX86
	default:
		return ArchNone
	}
}

// Filter is the file chooser's name filter.
type Filter struct {
	Description string
	// Extensions without the leading dot, primary first.
	Extensions []string
}

// ExecutableFilter accepts the native extension and the four
// architecture-specific variants.
var ExecutableFilter = newFilter("iex", "ie68", "ie65", "ie80", "ie86")

func newFilter(exts ...string) Filter {
	return Filter{
		Description: fmt.Sprintf("Intuition Engine Executables (%s)", strings.Join(globs(exts), ", ")),
		Extensions:  exts,
	}
}

// Patterns returns shell globs, one per extension ("*.iex").
func (f Filter) Patterns() []string {
	return globs(f.Extensions)
}

// DottedExtensions returns ".iex" style suffixes.
func (f Filter) DottedExtensions() []string {
	out := make([]string, len(f.Extensions))
	for i, ext := range f.Extensions {
		out[i] = "." + ext
	}
	return out
}

// Matches reports whether name carries one of the filter's extensions.
func (f Filter) Matches(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, candidate := range f.Extensions {
		if candidate == ext {
			return true
		}
	}
	return false
}

func globs(exts []string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		out[i] = "*." + ext
	}
	return out
}
