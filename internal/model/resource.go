package model

import "fmt"

// ResourceKind is the kind of feed a Resource points at.
type ResourceKind string

const (
	ResourceUser ResourceKind = "user"
	ResourceRepo ResourceKind = "repo"
	ResourceOrg  ResourceKind = "org"
)

// Resource is one polling target. Repository names are "owner/name".
type Resource struct {
	Kind ResourceKind
	Name string
}

func (r Resource) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.Name)
}
