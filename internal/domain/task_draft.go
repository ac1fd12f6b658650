package domain

// TaskDraft is a task read from an import file, before it is added to the
// store. Due is an unresolved due expression; empty means "now".
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	Text      string `yaml:"task"`
	Due       string `yaml:"due"`
	Completed bool   `yaml:"completed"`
}
