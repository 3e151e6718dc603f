package sqldocument

// TokenStream defines the pull-based lexer contract the segmenter drives.
//
// This interface abstracts the tokenizer implementation, enabling:
//   - Unit testing with scripted token sequences
//   - Alternative tokenizers for dialects with their own lexical rules
//   - Easier dependency injection in the segmenter
//
// A stream is restartable only by calling SetRange again. Once the range is
// exhausted NextToken keeps returning an EOFKind token positioned at the
// range end.
type TokenStream interface {
	// SetRange restricts scanning to [offset, offset+length) of buf and
	// positions the stream before the first token.
	SetRange(buf Buffer, offset, length int)

	// NextToken scans and returns the next token.
	NextToken() Token
}

// EvalSession is implemented by token streams that keep state across
// statements of one batch run, such as a delimiter redefined by a
// `DELIMITER $$` command. StartEval must be paired with exactly one EndEval.
type EvalSession interface {
	StartEval()
	EndEval()
}
