package domain

// Repository identifies the repository a pipeline belongs to.
type Repository struct {
	Owner string
	Name  string
}

// String returns "owner/name", or whichever half is set.
func (r Repository) String() string {
	switch {
	case r.Owner != "" && r.Name != "":
		return r.Owner + "/" + r.Name
	case r.Name != "":
		return r.Name
	default:
		return r.Owner
	}
}
