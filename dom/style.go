// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package dom

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// StyleDecl is a single css declaration of an inline style attribute.
type StyleDecl struct {
	Name  string
	Value string
}

type styleParser struct {
	input      string
	pos        int
	inQuote    bool
	quoteChar  byte
	openParens int
}

// ParseStyle parses an inline style attribute.  Declarations keep their source
// order; a repeated property keeps its first position and its last value.
func ParseStyle(input string) ([]StyleDecl, error) {
	p := &styleParser{input: input}
	var decls []StyleDecl
	lastProp := ""
	for {
		p.skipWhitespace()
		if p.eof() {
			break
		}
		propName, err := p.parseIdentifierColon(lastProp)
		if err != nil {
			return nil, err
		}
		lastProp = propName
		p.skipWhitespace()
		value, err := p.parseValue(propName)
		if err != nil {
			return nil, err
		}
		decls = setDecl(decls, propName, value)
		p.skipWhitespace()
		if p.eof() {
			break
		}
		if !p.expectChar(';') {
			break
		}
	}
	p.skipWhitespace()
	if !p.eof() {
		return nil, fmt.Errorf("bad style attribute, unexpected character %q at pos %d", string(p.input[p.pos]), p.pos+1)
	}
	return decls, nil
}

func (p *styleParser) parseIdentifierColon(lastProp string) (string, error) {
	start := p.pos
	for !p.eof() {
		c := p.peekChar()
		if isIdentChar(c) || c == '-' {
			p.pos++
		} else {
			break
		}
	}
	propName := p.input[start:p.pos]
	p.skipWhitespace()
	if p.eof() {
		return "", fmt.Errorf("bad style attribute, expected colon after property %q, got EOF, at pos %d", propName, p.pos+1)
	}
	if propName == "" {
		return "", fmt.Errorf("bad style attribute, invalid property name after property %q, at pos %d", lastProp, p.pos+1)
	}
	if !p.expectChar(':') {
		return "", fmt.Errorf("bad style attribute, bad property name starting with %q, expected colon, got %q, at pos %d", propName, string(p.input[p.pos]), p.pos+1)
	}
	return propName, nil
}

func (p *styleParser) parseValue(propName string) (string, error) {
	start := p.pos
	quotePos := 0
	var parenPosStack []int
	for !p.eof() {
		c := p.peekChar()
		if p.inQuote {
			if c == p.quoteChar {
				p.inQuote = false
			} else if c == '\\' {
				p.pos++
			}
		} else {
			if c == '"' || c == '\'' {
				p.inQuote = true
				p.quoteChar = c
				quotePos = p.pos
			} else if c == '(' {
				p.openParens++
				parenPosStack = append(parenPosStack, p.pos)
			} else if c == ')' {
				if p.openParens == 0 {
					return "", fmt.Errorf("unmatched ')' at pos %d", p.pos+1)
				}
				p.openParens--
				parenPosStack = parenPosStack[:len(parenPosStack)-1]
			} else if c == ';' && p.openParens == 0 {
				break
			}
		}
		p.pos++
	}
	if p.eof() && p.inQuote {
		return "", fmt.Errorf("bad style attribute, while parsing property %q, unmatched quote at pos %d", propName, quotePos+1)
	}
	if p.eof() && p.openParens > 0 {
		return "", fmt.Errorf("bad style attribute, while parsing property %q, unmatched '(' at pos %d", propName, parenPosStack[len(parenPosStack)-1]+1)
	}
	return strings.TrimSpace(p.input[start:p.pos]), nil
}

func isIdentChar(c byte) bool {
	return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

func (p *styleParser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(rune(p.peekChar())) {
		p.pos++
	}
}

func (p *styleParser) expectChar(expected byte) bool {
	if !p.eof() && p.peekChar() == expected {
		p.pos++
		return true
	}
	return false
}

func (p *styleParser) peekChar() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *styleParser) eof() bool {
	return p.pos >= len(p.input)
}

func setDecl(decls []StyleDecl, name string, value string) []StyleDecl {
	for idx := range decls {
		if decls[idx].Name == name {
			decls[idx].Value = value
			return decls
		}
	}
	return append(decls, StyleDecl{Name: name, Value: value})
}

func FormatStyle(decls []StyleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		parts = append(parts, decl.Name+": "+decl.Value)
	}
	return strings.Join(parts, "; ")
}

// CSSPropName converts a camelCase style key (backgroundColor) to its css
// name (background-color).  Custom properties and names with dashes are kept.
func CSSPropName(key string) string {
	if strings.HasPrefix(key, "--") || strings.Contains(key, "-") {
		return key
	}
	var sb strings.Builder
	for idx, r := range key {
		if unicode.IsUpper(r) {
			if idx > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// StyleDecls converts a style prop (a map or a css string) to declarations.
// Map keys are converted with CSSPropName and emitted in sorted order.
func StyleDecls(style any) ([]StyleDecl, error) {
	switch s := style.(type) {
	case nil:
		return nil, nil
	case string:
		return ParseStyle(s)
	case map[string]string:
		return sortedDecls(len(s), func(add func(string, any)) {
			for k, v := range s {
				add(k, v)
			}
		}), nil
	case map[string]any:
		return sortedDecls(len(s), func(add func(string, any)) {
			for k, v := range s {
				add(k, v)
			}
		}), nil
	}
	return nil, fmt.Errorf("style must be a map or a string, got %T", style)
}

func sortedDecls(size int, each func(add func(string, any))) []StyleDecl {
	decls := make([]StyleDecl, 0, size)
	each(func(k string, v any) {
		if v == nil {
			return
		}
		decls = append(decls, StyleDecl{Name: CSSPropName(k), Value: fmt.Sprint(v)})
	})
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}
