package sqlparser

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/vippsas/sqlscript/sqlparser/dialect"
	"github.com/vippsas/sqlscript/sqlparser/internal/utils"
	"github.com/vippsas/sqlscript/sqlparser/sqldocument"
	"github.com/vippsas/sqlscript/sqlparser/tokenizer"
)

// Parser splits script text into statements and control commands.
//
// A Parser owns its token stream and is not safe for concurrent use;
// create one Parser per goroutine. Parsing never fails: problems such as
// reads outside the buffer end the affected statement and are logged.
type Parser struct {
	cfg      ParseConfig
	dialect  *dialect.Dialect
	tokens   sqldocument.TokenStream
	commands *CommandRegistry
	log      logrus.FieldLogger
}

type Option func(*Parser)

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithCommands replaces the default command registry.
func WithCommands(commands *CommandRegistry) Option {
	return func(p *Parser) {
		p.commands = commands
	}
}

// WithTokenStream replaces the dialect tokenizer, e.g. with a scripted
// token sequence in tests.
func WithTokenStream(tokens sqldocument.TokenStream) Option {
	return func(p *Parser) {
		p.tokens = tokens
	}
}

func NewParser(cfg ParseConfig, opts ...Option) *Parser {
	p := &Parser{
		cfg:     cfg,
		dialect: cfg.effectiveDialect(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.commands == nil {
		p.commands = NewCommandRegistry()
	}
	if p.tokens == nil {
		p.tokens = tokenizer.New(p.dialect, tokenizer.WithLogger(p.log))
	}
	return p
}

func (p *Parser) Config() ParseConfig {
	return p.cfg
}

func (p *Parser) Dialect() *dialect.Dialect {
	return p.dialect
}

func (p *Parser) Commands() *CommandRegistry {
	return p.commands
}

// ParseNext scans text from scanStart and returns the first statement or
// control command ending at or after cursor, or nil when there is none
// before scanEnd.
//
// In batch mode control commands are returned wherever they appear;
// otherwise only when the cursor is on them. With keepDelimiters the
// delimiter ending a statement is kept in its text.
func (p *Parser) ParseNext(text string, scanStart, scanEnd, cursor int, batchMode, keepDelimiters bool) sqldocument.ScriptElement {
	return p.parseNext(sqldocument.NewBuffer(text), scanStart, scanEnd, cursor, batchMode, keepDelimiters, p.log)
}

func (p *Parser) parseNext(
	buf sqldocument.Buffer,
	scanStart, scanEnd, cursor int,
	batchMode, keepDelimiters bool,
	log logrus.FieldLogger,
) sqldocument.ScriptElement {
	if scanEnd > buf.Len() {
		scanEnd = buf.Len()
	}
	if scanStart < 0 || scanEnd-scanStart <= 0 {
		return nil
	}
	d := p.dialect

	p.tokens.SetRange(buf, scanStart, scanEnd-scanStart)
	var (
		blocks             BlockTracker
		statementStart     = scanStart
		hasValuable        bool
		hasBlocks          bool
		lastTokenLineFeeds int
		prevNotEmpty       = sqldocument.UnknownKind
		lastKeyword        string
	)
	for {
		token := p.tokens.NextToken()
		if token.Offset < scanStart {
			log.WithField("offset", token.Offset).Debug("token before scan start")
			return nil
		}
		kind := token.Kind
		// Only a registered command may cut a statement short; anything
		// else prefixed like @x at a line start is part of the SQL.
		if kind == sqldocument.ControlKind && hasValuable &&
			token.CommandID != "" && !p.commands.Has(token.CommandID) {
			kind = sqldocument.UnknownKind
		}

		isDelimiter := kind == sqldocument.DelimiterKind
		isControl := false
		var delimiterText string
		if isDelimiter {
			var err error
			if delimiterText, err = token.Text(buf); err != nil {
				log.WithError(err).Debug("reading delimiter")
			}
		} else if p.cfg.BlankLineIsDelimiter && token.IsWhitespace() && token.Length >= 1 {
			lineFeeds, err := buf.CountLineFeeds(token.Offset, token.Length)
			if err != nil {
				log.WithError(err).Warn("counting line feeds")
			}
			if lastTokenLineFeeds+lineFeeds >= 2 {
				isDelimiter = true
			}
		}
		lastTokenLineFeeds = 0

		if token.Length == 1 {
			ch, err := buf.Char(token.Offset)
			if err != nil {
				log.WithError(err).Warn("reading bracket")
			}
			switch ch {
			case '(', '{', '[':
				blocks.OpenBracket()
			case ')', '}', ']':
				blocks.CloseBracket()
			}
		}

		// END CASE split over two lines still closes a single block
		if kind == sqldocument.BlockBeginKind && prevNotEmpty == sqldocument.BlockEndKind {
			kind = sqldocument.UnknownKind
		}
		if !token.IsWhitespace() && !token.IsEOF() {
			prevNotEmpty = kind
		}

		switch {
		case kind == sqldocument.BlockHeaderKind:
			blocks.Header()
			hasBlocks = true
		case kind == sqldocument.BlockToggleKind:
			pattern, err := token.Text(buf)
			if err != nil {
				log.WithError(err).Warn("reading block toggle")
			}
			if !blocks.Toggle(pattern) {
				log.WithField("toggle", pattern).Debug("block toggle inside another block is not tracked")
			}
			hasBlocks = true
		case kind == sqldocument.BlockBeginKind:
			blocks.Begin()
			hasBlocks = true
		case kind == sqldocument.BlockEndKind && blocks.IsOpen():
			blocks.End()
		case isDelimiter && blocks.IsOpen():
			continue
		case kind == sqldocument.SetDelimiterKind || kind == sqldocument.ControlKind:
			isDelimiter = true
			isControl = true
		case kind == sqldocument.CommentKind:
			if token.Length >= 2 {
				lastTokenLineFeeds, _ = buf.CountLineFeeds(token.End()-2, 2)
			}
		}

		if token.Length > 0 && !token.IsWhitespace() {
			switch kind {
			case sqldocument.BlockBeginKind, sqldocument.BlockEndKind, sqldocument.BlockToggleKind,
				sqldocument.BlockHeaderKind, sqldocument.UnknownKind:
				if text, err := token.Text(buf); err == nil {
					lastKeyword = text
				} else {
					log.WithError(err).Error("reading keyword")
				}
			}
		}

		cursorInside := cursor >= token.Offset && cursor < token.End()
		if isControl && (batchMode || cursorInside) && !hasValuable {
			text, err := token.Text(buf)
			if err != nil {
				log.WithError(err).Warn("reading control command")
				return nil
			}
			command := &sqldocument.ControlCommand{
				Span:                    sqldocument.Span{Offset: token.Offset, Length: token.Length},
				Text:                    strings.TrimSpace(text),
				CommandID:               token.CommandID,
				IsDelimiterRedefinition: kind == sqldocument.SetDelimiterKind,
			}
			if command.IsEmpty() || p.commands.Has(command.CommandID) {
				return command
			}
			entry := log.WithField("command", command.CommandID)
			if suggestion := p.commands.Suggest(command.CommandID); suggestion != "" {
				entry = entry.WithField("suggestion", suggestion)
			}
			entry.Debug("unknown control command, treating as SQL")
			isControl = false
			isDelimiter = false
		}

		if hasValuable && (token.IsEOF() || (isDelimiter && token.Offset >= cursor) || token.Offset > scanEnd) {
			tokenOffset := token.Offset
			clamped := false
			if tokenOffset > scanEnd {
				tokenOffset = scanEnd
				clamped = true
			}
			if tokenOffset > buf.Len() {
				tokenOffset = buf.Len()
				clamped = true
			}

			for statementStart < tokenOffset && isSpaceAt(buf, statementStart) {
				statementStart++
			}
			if tokenOffset == statementStart {
				// empty statement
				if token.IsEOF() {
					return nil
				}
				statementStart = tokenOffset + token.Length
				continue
			}
			text, err := buf.Get(statementStart, tokenOffset-statementStart)
			if err != nil {
				log.WithError(err).Warn("reading statement")
				return nil
			}
			text = strings.TrimRightFunc(sqldocument.FixLineFeeds(text), unicode.IsSpace)

			if isDelimiter && (keepDelimiters ||
				(hasBlocks && d.DelimiterAfterQuery) ||
				(d.DelimiterAfterBlock && strings.EqualFold(lastKeyword, d.BlockEndKeyword()))) {
				// Only the default delimiter is kept; a GO or a blank line never is.
				if delimiterText == d.DefaultDelimiter() {
					text += delimiterText
				}
			}
			end := tokenOffset
			if kind == sqldocument.DelimiterKind && !clamped {
				end += token.Length
			}
			utils.DPrint("statement [%d,%d): %q\n", statementStart, end, text)
			return &sqldocument.Statement{
				Span: sqldocument.Span{Offset: statementStart, Length: end - statementStart},
				Text: text,
			}
		}
		if isDelimiter {
			statementStart = token.End()
		}
		if token.IsEOF() {
			return nil
		}
		if !hasValuable && !token.IsWhitespace() && !isControl && !isDelimiter {
			if kind == sqldocument.CommentKind {
				hasValuable = d.SupportsCommentQuery
			} else {
				hasValuable = true
			}
		}
	}
}

func isSpaceAt(buf sqldocument.Buffer, offset int) bool {
	ch, err := buf.Char(offset)
	return err == nil && unicode.IsSpace(rune(ch))
}
