package models

// Filter models. An empty value means the dimension is not filtered.
// DateFrom is an ISO calendar day passed to the backend as given.

// MentionFilter selects daily mention rows
type MentionFilter struct {
	DateFrom string
	Model    ModelID // "all" or empty disables the filter
}

// CategoryFilter selects top concept categories
type CategoryFilter struct {
	DateFrom string
	Model    ModelID
	Limit    int
}

// ConceptFilter selects concept mention rows
type ConceptFilter struct {
	DateFrom string
	Brand    string
	Model    ModelID
	Limit    int
}

// CitedPageFilter selects cited page rows
type CitedPageFilter struct {
	Domain     string
	DomainLike string // substring match, wins over Domain
	Limit      int
}

// URLPromptFilter selects URL prompt rows
type URLPromptFilter struct {
	Topic string
	LLM   string
	Limit int
}

// IsAll reports whether the model filter selects every model
func (m ModelID) IsAll() bool {
	return m == "" || m == ModelAll
}
