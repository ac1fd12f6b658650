package export

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/duelist/internal/domain"
)

// yamlFile accepts either a bare list or a document with a tasks key.
type yamlFile struct {
	Tasks []domain.TaskDraft `yaml:"tasks"`
}

// ReadYAML reads drafts from a YAML list of mappings with the keys task,
// due and completed. The list may also sit under a top-level tasks key.
func ReadYAML(r io.Reader) ([]domain.TaskDraft, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var drafts []domain.TaskDraft
		if err := root.Decode(&drafts); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return drafts, nil
	case yaml.MappingNode:
		var file yamlFile
		if err := root.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return file.Tasks, nil
	case yaml.ScalarNode:
		if root.ShortTag() == "!!null" {
			return nil, nil
		}
	}
	return nil, errors.New("parse yaml: expected a list of tasks")
}
