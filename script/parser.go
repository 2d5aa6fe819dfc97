package script

import (
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/lidas"
	"github.com/npillmayer/lidas/program"
	"github.com/npillmayer/lidas/scanner"
	"github.com/npillmayer/lidas/symtab"
	"github.com/npillmayer/schuko/gconf"
)

// Default timing of frames, if not configured.
const (
	DefaultDelayMs = 500
	DefaultHoldMs  = 0
)

// role of a command in statements.
type role int

const (
	noRole role = iota
	roleShow
	roleHide
	roleDefine
	roleAfter
	roleDuring
)

var roles = map[string]role{
	"mostre":  roleShow,
	"show":    roleShow,
	"apague":  roleHide,
	"hide":    roleHide,
	"defina":  roleDefine,
	"define":  roleDefine,
	"apos":    roleAfter,
	"after":   roleAfter,
	"durante": roleDuring,
	"during":  roleDuring,
}

// RoleOf returns the role name of a command label, or "" for labels without
// a role.
func RoleOf(label string) string {
	switch roleOf(label) {
	case roleShow:
		return "show"
	case roleHide:
		return "hide"
	case roleDefine:
		return "define"
	case roleAfter:
		return "after"
	case roleDuring:
		return "during"
	}
	return ""
}

func roleOf(label string) role {
	l := strings.ToLower(label)
	l = strings.TrimPrefix(l, "tk_")
	return roles[l]
}

// Parser states.
type state int

const (
	atStart       state = iota // SHOW | HIDE | DEFINE
	atTarget                   // ident
	afterTarget                // ',' | AFTER | DURING | ';'
	atDelay                    // integer
	afterDelay                 // DURING | ';'
	atHold                     // integer
	afterHold                  // ';'
	atGroupName                // ident
	atGroupEquals              // '='
	skipping                   // up to ';'
	done                       // after end of file
)

// statement collects the parts of the statement being parsed.
type statement struct {
	role    role
	pos     lidas.Pos
	name    *program.Token
	targets []*program.Token
	delay   int
	hold    int
}

// Parser is a push parser for statements. It implements program.Consumer.
type Parser struct {
	state         state
	stmt          *statement
	elements      map[string]string   // normalized id → id
	groups        map[string][]string // normalized group name → member ids
	caseSensitive bool
	delay, hold   int
	frames        *arraylist.List
	errors        []*Error
}

var _ program.Consumer = (*Parser)(nil)

// NewParser creates a parser for programs animating the SVG elements with
// the given ids. If caseSensitive is false, targets match element ids and
// group names ignoring case.
//
// Frames without explicit timing get their delay and hold from the
// configuration keys 'lidas.frame.delay' and 'lidas.frame.hold'.
func NewParser(elements []string, caseSensitive bool) *Parser {
	p := &Parser{
		elements:      make(map[string]string, len(elements)),
		groups:        make(map[string][]string),
		caseSensitive: caseSensitive,
		delay:         DefaultDelayMs,
		hold:          DefaultHoldMs,
		frames:        arraylist.New(),
	}
	if gconf.IsSet("lidas.frame.delay") {
		p.delay = gconf.GetInt("lidas.frame.delay")
	}
	if gconf.IsSet("lidas.frame.hold") {
		p.hold = gconf.GetInt("lidas.frame.hold")
	}
	for _, id := range elements {
		if _, dup := p.elements[p.key(id)]; !dup {
			p.elements[p.key(id)] = id
		}
	}
	return p
}

func (p *Parser) key(name string) string {
	if p.caseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// Frames returns the frames of all statements parsed so far.
func (p *Parser) Frames() []Frame {
	frames := make([]Frame, 0, p.frames.Size())
	for _, f := range p.frames.Values() {
		frames = append(frames, f.(Frame))
	}
	return frames
}

// Errors returns the statement errors found so far.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// Group returns the members of a group, or nil.
func (p *Parser) Group(name string) []string {
	return p.groups[p.key(name)]
}

// Done is true after the parser has consumed the end of the program.
func (p *Parser) Done() bool {
	return p.state == done
}

// Consume is part of interface program.Consumer.
func (p *Parser) Consume(token *program.Token) {
	if p.state == done {
		return
	}
	if token.Kind() == scanner.EndOfFile {
		if p.state != atStart && p.state != skipping {
			p.errorAt(token.Pos(), UnexpectedToken, "unexpected end of program, statement incomplete")
		}
		p.state = done
		return
	}
	r := noRole
	if token.Command != nil {
		r = roleOf(token.Command.Label)
	}
	switch p.state {
	case atStart:
		switch r {
		case roleShow, roleHide:
			p.stmt = &statement{role: r, pos: token.Pos(), delay: p.delay, hold: p.hold}
			p.state = atTarget
			return
		case roleDefine:
			p.stmt = &statement{role: r, pos: token.Pos()}
			p.state = atGroupName
			return
		}
		p.unexpected(token, "Mostre, Apague or Defina")
	case atTarget:
		if token.Kind() == scanner.Identifier {
			p.stmt.targets = append(p.stmt.targets, token)
			p.state = afterTarget
			return
		}
		p.unexpected(token, "element or group")
	case afterTarget:
		switch {
		case isDelimiter(token, ','):
			p.state = atTarget
			return
		case isDelimiter(token, ';'):
			p.complete()
			return
		case r == roleAfter && p.stmt.role != roleDefine:
			p.state = atDelay
			return
		case r == roleDuring && p.stmt.role != roleDefine:
			p.state = atHold
			return
		}
		p.unexpected(token, "',' or ';'")
	case atDelay, atHold:
		if n, ok := token.Value().(int64); ok && token.Kind() == scanner.LongInt {
			if p.state == atDelay {
				p.stmt.delay = int(n)
				p.state = afterDelay
			} else {
				p.stmt.hold = int(n)
				p.state = afterHold
			}
			return
		}
		p.unexpected(token, "number of milliseconds")
	case afterDelay:
		if r == roleDuring {
			p.state = atHold
			return
		}
		fallthrough
	case afterHold:
		if isDelimiter(token, ';') {
			p.complete()
			return
		}
		p.unexpected(token, "';'")
	case atGroupName:
		if token.Kind() == scanner.Identifier {
			p.stmt.name = token
			p.state = atGroupEquals
			return
		}
		p.unexpected(token, "group name")
	case atGroupEquals:
		if isDelimiter(token, '=') {
			p.state = atTarget
			return
		}
		p.unexpected(token, "'='")
	case skipping:
		if isDelimiter(token, ';') {
			p.state = atStart
		}
	}
}

func isDelimiter(token *program.Token, d byte) bool {
	b, ok := token.Value().(byte)
	return ok && token.Kind() == scanner.Delimiter && b == d
}

// unexpected reports a token and skips the rest of the statement. A ';'
// ends the statement at once.
func (p *Parser) unexpected(token *program.Token, expected string) {
	p.errorAt(token.Pos(), UnexpectedToken, "unexpected %s %q, expected %s",
		scanner.KindString(token.Kind()), token.Lexeme(), expected)
	p.stmt = nil
	if isDelimiter(token, ';') {
		p.state = atStart
		return
	}
	p.state = skipping
}

// complete executes a statement after its ';' has been read.
func (p *Parser) complete() {
	stmt := p.stmt
	p.stmt, p.state = nil, atStart
	if stmt.role == roleDefine {
		p.define(stmt)
		return
	}
	action := Show
	if stmt.role == roleHide {
		action = Hide
	}
	for _, target := range stmt.targets {
		if id, ok := p.elements[p.key(target.Lexeme())]; ok {
			classify(target, symtab.Element)
			p.frames.Add(Frame{Element: id, DelayMs: stmt.delay, HoldMs: stmt.hold, Action: action})
			continue
		}
		if members, ok := p.groups[p.key(target.Lexeme())]; ok {
			for i, id := range members {
				p.frames.Add(Frame{
					Element:      id,
					Group:        true,
					FirstInGroup: i == 0,
					DelayMs:      stmt.delay,
					HoldMs:       stmt.hold,
					Action:       action,
				})
			}
			continue
		}
		p.errorAt(target.Pos(), UnknownElement, "%q is neither an element nor a group", target.Lexeme())
	}
}

// define enters a group. Groups among the members are replaced by their
// members.
func (p *Parser) define(stmt *statement) {
	name := stmt.name.Lexeme()
	if _, dup := p.groups[p.key(name)]; dup {
		p.errorAt(stmt.name.Pos(), DuplicateGroup, "group %q already defined", name)
		return
	}
	if _, clash := p.elements[p.key(name)]; clash {
		p.errorAt(stmt.name.Pos(), DuplicateGroup, "group %q has the name of an element", name)
		return
	}
	var members []string
	for _, target := range stmt.targets {
		if id, ok := p.elements[p.key(target.Lexeme())]; ok {
			classify(target, symtab.Element)
			members = append(members, id)
		} else if group, ok := p.groups[p.key(target.Lexeme())]; ok {
			members = append(members, group...)
		} else {
			p.errorAt(target.Pos(), UnknownElement, "%q is neither an element nor a group", target.Lexeme())
		}
	}
	classify(stmt.name, symtab.Group)
	p.groups[p.key(name)] = members
	tracer().Debugf("group %s = %v", name, members)
}

func classify(token *program.Token, kind symtab.Kind) {
	if token.Tag != nil && token.Tag.Kind == symtab.Unknown {
		token.Tag.Kind = kind
	}
}
