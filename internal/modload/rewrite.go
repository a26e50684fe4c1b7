// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package modload

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// resolverImportPath is the synthetic package through which rewritten
// scripts reach the loader's dependency resolver.
const resolverImportPath = "npack/rt"

// Recognized statement shapes. The rewrite is deliberately not a full parse:
// loaded scripts are small, self-contained files, so their linkage surface
// is matched against this enumerated set and everything else that looks like
// linkage is rejected with [ErrUnsupportedSyntax].
var (
	packagePattern      = regexp.MustCompile(`^package\s+(\w+)\s*$`)
	importPrefixPattern = regexp.MustCompile(`^import\b`)
	importSinglePattern = regexp.MustCompile(`^import\s+(?:(\w+|\.)\s+)?"([^"]+)"\s*$`)
	importOpenPattern   = regexp.MustCompile(`^import\s+\(\s*$`)
	importSpecPattern   = regexp.MustCompile(`^(?:(\w+|\.)\s+)?"([^"]+)"\s*$`)

	exportFuncPattern  = regexp.MustCompile(`^func\s+(\p{Lu}\w*)\s*\(`)
	exportValuePattern = regexp.MustCompile(`^(?:var|const)\s+(\p{Lu}\w*(?:\s*,\s*\p{Lu}\w*)*)`)

	// Factored var/const blocks. Entry lines are an identifier list followed
	// by an assignment, a type, or nothing (iota continuation); continuation
	// lines of multiline values do not match.
	valuePrefixPattern = regexp.MustCompile(`^(?:var|const)\s*\(`)
	valueOpenPattern   = regexp.MustCompile(`^(?:var|const)\s*\(\s*$`)
	valueEntryPattern  = regexp.MustCompile(
		`^([A-Za-z_]\w*(?:\s*,\s*[A-Za-z_]\w*)*)\s*(?:=|$|[A-Za-z_*\[])`)
	exportedNamePattern = regexp.MustCompile(`^\p{Lu}`)

	identPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// importSpec is one declared import after shape matching.
type importSpec struct {
	alias string
	path  string
}

// rewritten is the result of the translation pass.
type rewritten struct {
	// pkg is the script's original package name.
	pkg string

	// source is the executable translation of the script.
	source string

	// exports are the exported top-level identifiers found in the script,
	// in order of appearance.
	exports []string

	// requires are the module references the script declared as imports,
	// now served through the dependency resolver.
	requires []importSpec
}

// rewrite translates a script from declarative import/export syntax into the
// interpreter's convention: ambient packages stay declared imports, while
// everything else becomes a resolver call bound to the import's name. The
// ambientFn callback decides whether an import path is served by the host's
// ambient symbol table.
func rewrite(source string, ambientFn func(string) bool) (*rewritten, error) {
	result := &rewritten{pkg: "main"}

	var (
		kept     []importSpec
		body     []string
		inBlock  bool
		inValues bool
		lineErr  error
		consumed bool
	)

	classify := func(spec importSpec) {
		local := strings.HasPrefix(spec.path, "./") ||
			strings.HasPrefix(spec.path, "../")

		if !local && ambientFn(spec.path) {
			kept = append(kept, spec)
			return
		}

		result.requires = append(result.requires, spec)
	}

	for lineNo, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(stripLineComment(line))

		switch {
		case inBlock:
			consumed = true

			if trimmed == ")" {
				inBlock = false
				continue
			}

			if trimmed == "" {
				continue
			}

			spec, err := parseImportSpec(trimmed)
			if err != nil {
				lineErr = fmt.Errorf("line %d: %w", lineNo+1, err)
			} else if spec != nil {
				classify(*spec)
			}

		case packagePattern.MatchString(trimmed):
			result.pkg = packagePattern.FindStringSubmatch(trimmed)[1]
			consumed = true

		case importOpenPattern.MatchString(trimmed):
			inBlock = true
			consumed = true

		case importPrefixPattern.MatchString(trimmed):
			consumed = true

			match := importSinglePattern.FindStringSubmatch(trimmed)
			if match == nil {
				lineErr = fmt.Errorf("line %d: %w: %s",
					lineNo+1, ErrUnsupportedSyntax, trimmed)
				continue
			}

			spec, err := parseAlias(match[1], match[2])
			if err != nil {
				lineErr = fmt.Errorf("line %d: %w", lineNo+1, err)
			} else if spec != nil {
				classify(*spec)
			}

		default:
			consumed = false
		}

		if lineErr != nil {
			return nil, lineErr
		}

		if consumed {
			continue
		}

		if inValues {
			if trimmed == ")" {
				inValues = false
			} else if match := valueEntryPattern.FindStringSubmatch(trimmed); match != nil {
				for _, name := range strings.Split(match[1], ",") {
					name = strings.TrimSpace(name)
					if exportedNamePattern.MatchString(name) {
						result.exports = append(result.exports, name)
					}
				}
			}

			body = append(body, line)

			continue
		}

		if valuePrefixPattern.MatchString(line) {
			// Inline factored declarations would be missed silently, so
			// only the block form is accepted.
			if !valueOpenPattern.MatchString(trimmed) {
				return nil, fmt.Errorf("line %d: %w: %s",
					lineNo+1, ErrUnsupportedSyntax, trimmed)
			}

			inValues = true

			body = append(body, line)

			continue
		}

		if match := exportFuncPattern.FindStringSubmatch(line); match != nil {
			result.exports = append(result.exports, match[1])
		} else if match := exportValuePattern.FindStringSubmatch(line); match != nil {
			for _, name := range strings.Split(match[1], ",") {
				result.exports = append(result.exports, strings.TrimSpace(name))
			}
		}

		body = append(body, line)
	}

	result.source = assemble(kept, result.requires, body)

	return result, nil
}

// parseImportSpec matches one entry of a factored import block.
func parseImportSpec(entry string) (*importSpec, error) {
	match := importSpecPattern.FindStringSubmatch(entry)
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSyntax, entry)
	}

	return parseAlias(match[1], match[2])
}

// parseAlias validates the alias of an import and derives one from the path
// if none is declared. Dot imports cannot be spliced into a constructed
// scope and are rejected. Blank imports are dropped.
func parseAlias(alias, importPath string) (*importSpec, error) {
	switch alias {
	case ".":
		return nil, fmt.Errorf("%w: dot import %q", ErrUnsupportedSyntax, importPath)
	case "_":
		return nil, nil
	case "":
		alias = strings.TrimSuffix(path.Base(importPath), ".go")
	}

	if !identPattern.MatchString(alias) {
		return nil, fmt.Errorf("%w: import name %q for %q",
			ErrUnsupportedSyntax, alias, importPath)
	}

	return &importSpec{alias: alias, path: importPath}, nil
}

// assemble emits the executable translation: a main package with the kept
// ambient imports, one resolver binding per required module, and the
// original body.
func assemble(kept, requires []importSpec, body []string) string {
	var builder strings.Builder

	builder.WriteString("package main\n\n")

	if len(kept) > 0 || len(requires) > 0 {
		builder.WriteString("import (\n")

		if len(requires) > 0 {
			fmt.Fprintf(&builder, "\t__rt %q\n", resolverImportPath)
		}

		for _, spec := range kept {
			fmt.Fprintf(&builder, "\t%s %q\n", spec.alias, spec.path)
		}

		builder.WriteString(")\n\n")
	}

	for _, spec := range requires {
		fmt.Fprintf(&builder, "var %s = __rt.Resolve(%q)\n", spec.alias, spec.path)
	}

	if len(requires) > 0 {
		builder.WriteString("\n")
	}

	builder.WriteString(strings.Join(body, "\n"))

	return builder.String()
}

// stripLineComment drops a trailing line comment from an import line. String
// literals in import declarations cannot contain "//", so no quote tracking
// is needed here.
func stripLineComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		return line[:idx]
	}

	return line
}
