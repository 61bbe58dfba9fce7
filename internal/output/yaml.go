package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// yamlWriter writes the structured article dump as YAML.
type yamlWriter struct {
	w io.Writer
}

func (y *yamlWriter) Write(doc Document) error {
	encoder := yaml.NewEncoder(y.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}
