/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package history

import "slices"

// Glob is a compiled activity label pattern. The syntax is small:
//
//	*        any sequence of characters, including none
//	?        exactly one character
//	{A,B}    either A or B; alternatives may contain any syntax, including braces
//	\c       the literal character c
//
// Everything else matches itself. Some examples:
//
//	{ON_FOOT,STILL}   either of those
//	ON_*              whenever we are on something
//	IN_*              whenever we are in something
type Glob struct {
	pattern string
	nodes   []globNode
}

type globNodeKind int

const (
	globLiteral globNodeKind = iota
	globAnyOne
	globAnySeq
	globAlternation
)

type globNode struct {
	kind    globNodeKind
	lit     rune
	choices [][]globNode
}

// CompileGlob parses pattern into a Glob.
func CompileGlob(pattern string) (Glob, error) {
	p := globParser{pattern: pattern, runes: []rune(pattern)}
	nodes, err := p.parseSeq(false)
	if err != nil {
		return Glob{}, err
	}
	return Glob{pattern: pattern, nodes: nodes}, nil
}

// Match returns true if s matches the whole pattern.
func (g Glob) Match(s string) bool {
	return matchGlobNodes(g.nodes, []rune(s))
}

func (g Glob) String() string { return g.pattern }

type globParser struct {
	pattern string
	runes   []rune
	pos     int
}

// parseSeq parses a sequence of nodes until the end of the pattern or,
// when inside braces, until the ',' or '}' that ends the alternative.
func (p *globParser) parseSeq(inBraces bool) ([]globNode, error) {
	var seq []globNode
	for p.pos < len(p.runes) {
		r := p.runes[p.pos]
		switch r {
		case '*':
			// consecutive stars are the same as one
			if len(seq) == 0 || seq[len(seq)-1].kind != globAnySeq {
				seq = append(seq, globNode{kind: globAnySeq})
			}
			p.pos++
		case '?':
			seq = append(seq, globNode{kind: globAnyOne})
			p.pos++
		case '\\':
			if p.pos+1 >= len(p.runes) {
				return nil, &PatternError{Pattern: p.pattern, Pos: p.pos, Reason: "trailing escape character"}
			}
			seq = append(seq, globNode{kind: globLiteral, lit: p.runes[p.pos+1]})
			p.pos += 2
		case '{':
			alt, err := p.parseAlternation()
			if err != nil {
				return nil, err
			}
			seq = append(seq, alt)
		case ',', '}':
			if inBraces {
				return seq, nil
			}
			if r == '}' {
				return nil, &PatternError{Pattern: p.pattern, Pos: p.pos, Reason: "unmatched '}'"}
			}
			seq = append(seq, globNode{kind: globLiteral, lit: r})
			p.pos++
		default:
			seq = append(seq, globNode{kind: globLiteral, lit: r})
			p.pos++
		}
	}
	return seq, nil
}

// parseAlternation parses "{a,b,...}" starting at the opening brace.
func (p *globParser) parseAlternation() (globNode, error) {
	start := p.pos
	p.pos++ // consume '{'

	node := globNode{kind: globAlternation}
	for {
		choice, err := p.parseSeq(true)
		if err != nil {
			return globNode{}, err
		}
		node.choices = append(node.choices, choice)

		if p.pos >= len(p.runes) {
			return globNode{}, &PatternError{Pattern: p.pattern, Pos: start, Reason: "unclosed '{'"}
		}
		closing := p.runes[p.pos] == '}'
		p.pos++ // consume ',' or '}'
		if closing {
			return node, nil
		}
	}
}

func matchGlobNodes(nodes []globNode, s []rune) bool {
	for len(nodes) > 0 {
		n := nodes[0]
		switch n.kind {
		case globLiteral:
			if len(s) == 0 || s[0] != n.lit {
				return false
			}
			s = s[1:]
		case globAnyOne:
			if len(s) == 0 {
				return false
			}
			s = s[1:]
		case globAnySeq:
			rest := nodes[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchGlobNodes(rest, s[i:]) {
					return true
				}
			}
			return false
		case globAlternation:
			rest := nodes[1:]
			for _, choice := range n.choices {
				if matchGlobNodes(slices.Concat(choice, rest), s) {
					return true
				}
			}
			return false
		}
		nodes = nodes[1:]
	}
	return len(s) == 0
}
