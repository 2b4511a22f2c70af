// Package querylog reads and appends the upsert statement log that is the
// durable form of the graph.
package querylog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
)

const (
	commentPrefix = "//"
	maxLineSize   = 16 * 1024 * 1024
)

var errNoMatch = errors.New("no statement")

// ParseStats counts what a parse recovered. Skipped lines are non-blank,
// non-comment lines that matched no statement.
type ParseStats struct {
	Lines         int `json:"lines"`
	Nodes         int `json:"nodes"`
	Relationships int `json:"relationships"`
	Skipped       int `json:"skipped"`
}

// Statement is one recovered log line; exactly one field is set.
type Statement struct {
	Node         *model.Node
	Relationship *model.Relationship
}

// Load recovers the graph from the log at path. A missing file is an empty
// graph, not an error.
func Load(path string) (*state.GraphState, ParseStats, error) {
	st := state.New()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st, ParseStats{}, nil
		}
		return nil, ParseStats{}, fmt.Errorf("failed to open query log '%s': %w", path, err)
	}
	defer f.Close()

	stats, err := Parse(f, st)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read query log '%s': %w", path, err)
	}
	return st, stats, nil
}

// Parse replays every statement in r into st. Nodes are keyed by id, so a
// later line for the same id wins. Relationships are appended in file order.
// Lines that are not statements are skipped.
func Parse(r io.Reader, st *state.GraphState) (ParseStats, error) {
	var stats ParseStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		stats.Lines++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		stmt, ok := ParseStatement(line)
		switch {
		case !ok:
			stats.Skipped++
		case stmt.Relationship != nil:
			st.AddRelationship(*stmt.Relationship)
			stats.Relationships++
		case stmt.Node != nil:
			st.AddNode(*stmt.Node)
			stats.Nodes++
		}
	}
	return stats, sc.Err()
}

// ParseStatement recognises a single relationship or node upsert.
func ParseStatement(line string) (Statement, bool) {
	toks := lex(line)
	if rel, err := parseRelationship(toks); err == nil {
		return Statement{Relationship: &rel}, true
	}
	if node, err := parseNode(toks); err == nil {
		return Statement{Node: &node}, true
	}
	return Statement{}, false
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(punct string) error {
	t := p.next()
	if !t.is(punct) {
		return fmt.Errorf("expected %q at offset %d, got %q", punct, t.pos, t.text)
	}
	return nil
}

func (p *parser) ident() (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", fmt.Errorf("expected identifier at offset %d, got %q", t.pos, t.text)
	}
	return t.text, nil
}

// properties parses "{ key: value, ... }". A trailing comma is tolerated.
func (p *parser) properties() (model.Properties, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var props model.Properties
	for {
		if p.peek().is("}") {
			p.next()
			return props, nil
		}
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		props.Set(key, v)

		t := p.next()
		switch {
		case t.is(","):
		case t.is("}"):
			return props, nil
		default:
			return nil, fmt.Errorf("expected ',' or '}' at offset %d, got %q", t.pos, t.text)
		}
	}
}

// value accepts strings, integers, decimals and bare words (as strings).
func (p *parser) value() (model.Value, error) {
	t := p.next()
	switch t.kind {
	case tokString, tokIdent:
		return model.StringValue(t.text), nil
	case tokInt:
		i, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			// out of int64 range
			f, ferr := strconv.ParseFloat(t.text, 64)
			if ferr != nil {
				return model.Value{}, err
			}
			return model.FloatValue(f), nil
		}
		return model.IntValue(i), nil
	case tokFloat:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return model.Value{}, err
		}
		return model.FloatValue(f), nil
	}
	return model.Value{}, fmt.Errorf("expected value at offset %d, got %q", t.pos, t.text)
}

// parseNode finds "UPSERT (var:Label {props})" anywhere in the line. MERGE is
// accepted in place of UPSERT and the keyword is case-insensitive.
func parseNode(toks []token) (model.Node, error) {
	for i, t := range toks {
		if t.kind != tokIdent || !(strings.EqualFold(t.text, model.UpsertKeyword) || strings.EqualFold(t.text, "MERGE")) {
			continue
		}
		p := &parser{toks: toks, pos: i + 1}
		if n, err := p.node(); err == nil {
			return n, nil
		}
	}
	return model.Node{}, errNoMatch
}

func (p *parser) node() (model.Node, error) {
	if err := p.expect("("); err != nil {
		return model.Node{}, err
	}
	if p.peek().kind == tokIdent {
		p.next()
	}
	if err := p.expect(":"); err != nil {
		return model.Node{}, err
	}
	label, err := p.ident()
	if err != nil {
		return model.Node{}, err
	}
	props, err := p.properties()
	if err != nil {
		return model.Node{}, err
	}
	if err := p.expect(")"); err != nil {
		return model.Node{}, err
	}
	id, ok := props.Get("id")
	if !ok || id.String() == "" {
		return model.Node{}, errors.New("node without id")
	}
	return model.Node{
		ID:         id.String(),
		Label:      model.Label(label),
		Properties: props.Without("id"),
	}, nil
}

// parseRelationship needs two {id: "..."} anchors followed by
// -[:TYPE {props}]->. The property block on the arrow is optional.
func parseRelationship(toks []token) (model.Relationship, error) {
	var anchors []string
	i := 0
	for ; i < len(toks) && len(anchors) < 2; i++ {
		if !toks[i].is("{") {
			continue
		}
		p := &parser{toks: toks, pos: i}
		props, err := p.properties()
		if err != nil {
			continue
		}
		if id, ok := props.Get("id"); ok && len(props) == 1 && id.Kind == model.KindString {
			anchors = append(anchors, id.Str)
			i = p.pos - 1
		}
	}
	if len(anchors) < 2 {
		return model.Relationship{}, errNoMatch
	}
	for ; i+1 < len(toks); i++ {
		if !toks[i].is("-") || !toks[i+1].is("[") {
			continue
		}
		p := &parser{toks: toks, pos: i}
		if rel, err := p.arrow(); err == nil {
			rel.SourceID, rel.TargetID = anchors[0], anchors[1]
			return rel, nil
		}
	}
	return model.Relationship{}, errNoMatch
}

func (p *parser) arrow() (model.Relationship, error) {
	var rel model.Relationship
	for _, punct := range []string{"-", "[", ":"} {
		if err := p.expect(punct); err != nil {
			return rel, err
		}
	}
	relType, err := p.ident()
	if err != nil {
		return rel, err
	}
	rel.Type = relType
	if p.peek().is("{") {
		if rel.Properties, err = p.properties(); err != nil {
			return rel, err
		}
	}
	for _, punct := range []string{"]", "-", ">"} {
		if err := p.expect(punct); err != nil {
			return rel, err
		}
	}
	return rel, nil
}
