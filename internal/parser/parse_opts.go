package parser

type parseOpts struct {
	strictNumbers bool
}

// ParseOption configures Parse
type ParseOption func(*parseOpts)

// StrictNumbers rejects number literals with leading zeros (012, -01) as
// IncorrectNum. By default they are accepted.
func StrictNumbers(v bool) ParseOption {
	return func(o *parseOpts) { o.strictNumbers = v }
}
