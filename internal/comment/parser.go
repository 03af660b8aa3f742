package comment

import (
	"strings"

	"docdecl/internal/source"
)

// Parse lexes a raw comment body (comment markers already stripped) into a
// DocComment. start is the location of the comment's first line, used for
// error reporting.
//
// Supported syntax is doxygen-flavored: \brief, \details, \param NAME,
// \tparam NAME and \returns commands with either a '\' or '@' introducer,
// an implicit brief taken from the leading plain paragraph, further plain
// paragraphs as details, and '-' bullets forming list sections. Unknown
// commands become inline sections under their own name.
func Parse(raw string, start source.Location) (*DocComment, error) {
	p := &parser{stream: newLineStream(raw, start)}
	if err := p.run(); err != nil {
		return nil, err
	}
	return NewDocComment(p.brief, p.sections), nil
}

type parser struct {
	stream   *lineStream
	brief    *Brief
	sections []Section
	sawText  bool // set once any paragraph or command was consumed
}

func (p *parser) run() error {
	for {
		p.stream.skipBlank()
		if p.stream.eof() {
			return nil
		}

		line := p.stream.peek()
		switch {
		case isCommandLine(line):
			if err := p.parseCommand(); err != nil {
				return err
			}
		case isBulletLine(line):
			p.parseList()
		default:
			p.parseParagraph()
		}
	}
}

// parseParagraph consumes a run of plain lines. The first paragraph of a
// comment becomes the implicit brief unless a \brief already claimed it.
func (p *parser) parseParagraph() {
	text := p.paragraphText()
	if !p.sawText && p.brief == nil {
		p.brief = &Brief{Text: text}
	} else {
		p.sections = append(p.sections, &Details{Text: text})
	}
	p.sawText = true
}

func (p *parser) parseList() {
	var items []ListItem
	for !p.stream.eof() && isBulletLine(p.stream.peek()) {
		line := strings.TrimPrefix(strings.TrimPrefix(p.stream.bump(), "-"), " ")
		items = append(items, splitListItem(line))
	}
	p.sections = append(p.sections, &List{Items: items})
	p.sawText = true
}

func (p *parser) parseCommand() error {
	loc := p.stream.location()
	line := p.stream.bump()
	rest := line[1:] // introducer

	name, args := splitWord(rest)
	if name == "" {
		return &ParseError{Expected: "command name", Got: line, Loc: loc}
	}

	switch name {
	case "brief":
		text := p.continuedText(args)
		if p.brief != nil {
			// doxygen merges repeated briefs; keep that behavior
			p.brief.Text = strings.TrimSpace(p.brief.Text + " " + text)
		} else {
			p.brief = &Brief{Text: text}
		}
	case "details":
		p.sections = append(p.sections, &Details{Text: p.continuedText(args)})
	case "param", "tparam":
		param, text := splitWord(args)
		if param == "" {
			return &ParseError{Expected: name + " name", Got: line, Loc: loc}
		}
		p.sections = append(p.sections, &Inline{Command: name + " " + param, Text: p.continuedText(text)})
	case "returns", "return":
		p.sections = append(p.sections, &Inline{Command: "returns", Text: p.continuedText(args)})
	default:
		p.sections = append(p.sections, &Inline{Command: name, Text: p.continuedText(args)})
	}
	p.sawText = true
	return nil
}

// paragraphText consumes lines until a blank line, a command or a bullet.
func (p *parser) paragraphText() string {
	var lines []string
	for !p.stream.eof() {
		line := p.stream.peek()
		if line == "" || isCommandLine(line) || isBulletLine(line) {
			break
		}
		lines = append(lines, p.stream.bump())
	}
	return strings.Join(lines, "\n")
}

// continuedText joins a command's same-line argument text with its
// continuation lines.
func (p *parser) continuedText(first string) string {
	rest := p.paragraphText()
	if first == "" {
		return rest
	}
	if rest == "" {
		return first
	}
	return first + "\n" + rest
}

// splitWord splits off the first whitespace-delimited word.
func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// splitListItem recognizes "key: text" bullets; everything else is unkeyed.
func splitListItem(line string) ListItem {
	if i := strings.Index(line, ":"); i > 0 {
		key := line[:i]
		if !strings.ContainsAny(key, " \t") {
			return ListItem{Key: key, Text: strings.TrimSpace(line[i+1:])}
		}
	}
	return ListItem{Text: strings.TrimSpace(line)}
}
