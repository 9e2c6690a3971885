package markdown

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontmatterDelimiter opens and closes the document header.
const frontmatterDelimiter = "---\n"

// Frontmatter renders the YAML header of the combined document. Values are
// always double-quoted.
func (n *Normaliser) Frontmatter(title, description string) (string, error) {
	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("title", 0), scalar(title, yaml.DoubleQuotedStyle),
			scalar("description", 0), scalar(description, yaml.DoubleQuotedStyle),
		},
	}

	body, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("rendering frontmatter: %w", err)
	}

	return frontmatterDelimiter + string(body) + frontmatterDelimiter, nil
}

func scalar(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
		Style: style,
	}
}
