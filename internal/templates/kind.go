package templates

import "strings"

// Kind identifies one of the fixed PR templates
type Kind string

const (
	Bug         Kind = "bug"
	Feature     Kind = "feature"
	Docs        Kind = "docs"
	Refactor    Kind = "refactor"
	Test        Kind = "test"
	Performance Kind = "performance"
	Security    Kind = "security"
)

// Kinds returns every template kind in catalog order
func Kinds() []Kind {
	return []Kind{Bug, Feature, Docs, Refactor, Test, Performance, Security}
}

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known templates
func (k Kind) IsValid() bool {
	switch k {
	case Bug, Feature, Docs, Refactor, Test, Performance, Security:
		return true
	default:
		return false
	}
}

// Filename returns the template file backing the kind
func (k Kind) Filename() string {
	return string(k) + ".md"
}

// DisplayName returns the human label of the kind
func (k Kind) DisplayName() string {
	switch k {
	case Bug:
		return "Bug Fix"
	case Feature:
		return "Feature"
	case Docs:
		return "Documentation"
	case Refactor:
		return "Refactor"
	case Test:
		return "Test"
	case Performance:
		return "Performance"
	case Security:
		return "Security"
	default:
		return string(k)
	}
}

// synonyms maps lower-cased change type labels onto template kinds
var synonyms = map[string]Kind{
	"bug":           Bug,
	"fix":           Bug,
	"bugfix":        Bug,
	"hotfix":        Bug,
	"feature":       Feature,
	"feat":          Feature,
	"enhancement":   Feature,
	"docs":          Docs,
	"doc":           Docs,
	"documentation": Docs,
	"refactor":      Refactor,
	"refactoring":   Refactor,
	"cleanup":       Refactor,
	"test":          Test,
	"tests":         Test,
	"testing":       Test,
	"performance":   Performance,
	"perf":          Performance,
	"optimization":  Performance,
	"security":      Security,
	"vulnerability": Security,
}

// DefaultKind is used for change types with no known synonym
func DefaultKind() Kind {
	return Feature
}

// LookupKind maps a free-form change type to a kind. ok is false when the
// label is unknown.
func LookupKind(changeType string) (kind Kind, ok bool) {
	kind, ok = synonyms[strings.ToLower(strings.TrimSpace(changeType))]
	return kind, ok
}

// ParseKind maps a free-form change type to a kind, falling back to
// DefaultKind for anything unrecognized
func ParseKind(changeType string) Kind {
	if kind, ok := LookupKind(changeType); ok {
		return kind
	}
	return DefaultKind()
}
