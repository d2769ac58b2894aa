package spec

// Operator is a comparison operator inside a conditional clause.
type Operator string

const (
	OpEq  Operator = "=="
	OpNeq Operator = "!="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
)

// Clause is one (field, operator, literal) triple.
type Clause struct {
	Field string   `json:"field"`
	Op    Operator `json:"operation"`
	Value string   `json:"criteria"`
}

// Conditional is an AND/OR clause tree applied to the working table before
// spec data is computed. And-clauses must all hold; or-clauses contribute
// rows where any holds. A nil or empty Conditional keeps every row.
type Conditional struct {
	And []Clause `json:"and,omitempty"`
	Or  []Clause `json:"or,omitempty"`
}

// IsEmpty reports whether the conditional restricts anything.
func (c *Conditional) IsEmpty() bool {
	return c == nil || (len(c.And) == 0 && len(c.Or) == 0)
}
