package enumerate

import (
	"vizier/domain/spec"
)

// Caption token helpers. Field tokens carry field names verbatim; the joined
// token texts form the spec description.

func plain(text string) spec.Token {
	return spec.Token{Kind: spec.TokenPlain, Text: text}
}

func fieldToken(name string) spec.Token {
	return spec.Token{Kind: spec.TokenField, Text: name}
}

func operation(name string) spec.Token {
	return spec.Token{Kind: spec.TokenOperation, Text: name}
}

func transformation(name string) spec.Token {
	return spec.Token{Kind: spec.TokenTransformation, Text: name}
}

func aggregateMeta(fn spec.AggFn, fieldName string) spec.Meta {
	return spec.NewMeta(operation(string(fn)), plain("of"), fieldToken(fieldName))
}

func valueCountMeta(fieldName string) spec.Meta {
	return spec.NewMeta(operation("count"), plain("of values of"), fieldToken(fieldName))
}

func indexValueMeta(fieldName string) spec.Meta {
	return spec.NewMeta(fieldToken(fieldName), plain("by row index"))
}

func binAggregateMeta(fieldName string) spec.Meta {
	return spec.NewMeta(operation("count"), plain("of"), transformation("binned"), fieldToken(fieldName))
}

func valueAggregateMeta(fn spec.AggFn, quantName, catName string) spec.Meta {
	return spec.NewMeta(operation(string(fn)), plain("of"), fieldToken(quantName),
		plain("grouped by"), fieldToken(catName))
}

func valueValueMeta(a, b string) spec.Meta {
	return spec.NewMeta(fieldToken(a), plain("vs."), fieldToken(b))
}

func aggregateAggregateMeta(fn spec.AggFn, q1, q2, catName string) spec.Meta {
	return spec.NewMeta(operation(string(fn)), plain("of"), fieldToken(q1),
		plain("and"), fieldToken(q2), plain("grouped by"), fieldToken(catName))
}

func connectionMeta(c1, c2, quantName string) spec.Meta {
	return spec.NewMeta(fieldToken(c1), plain("to"), fieldToken(c2),
		plain("weighted by"), fieldToken(quantName))
}
