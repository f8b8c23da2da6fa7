package types

// Worker is an elf on the production roster.
type Worker struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Skill  string `json:"skill,omitempty"`
	Active bool   `json:"active"`
}

// ResourceID implements Resource.
func (w Worker) ResourceID() string { return w.ID }

// Validate implements Resource.
func (w Worker) Validate() error {
	if w.ID == "" {
		return invalid(KindWorkers, "missing id")
	}
	if w.Name == "" {
		return invalid(KindWorkers, "%s has no name", w.ID)
	}
	return nil
}
