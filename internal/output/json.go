package output

import (
	"encoding/json"
	"io"
)

// jsonWriter writes the structured article dump as pretty-printed JSON.
type jsonWriter struct {
	w io.Writer
}

func (j *jsonWriter) Write(doc Document) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if _, err := j.w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(j.w, "\n")
	return err
}
