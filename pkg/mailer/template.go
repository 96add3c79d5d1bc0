package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a template, between "---" lines.
type FrontMatter struct {
	Subject string `yaml:"subject"`
	Preview string `yaml:"preview"`
}

var fence = []byte("---")

// SplitFrontMatter separates the optional YAML header from the markdown body.
func SplitFrontMatter(content []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, fence) {
		return fm, content, nil
	}

	rest := bytes.TrimPrefix(content, fence)
	head, body, ok := bytes.Cut(rest, append([]byte("\n"), fence...))
	if !ok {
		return fm, nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	if err := yaml.Unmarshal(head, &fm); err != nil {
		return fm, nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	return fm, bytes.TrimPrefix(body, []byte("\n")), nil
}
