package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// MapSlice converts the document to an ordered YAML mapping.
//
// Named sections become nested mappings. Entries of unnamed sections are
// written at the top level, where they were parsed from.
func (d *Document) MapSlice() yaml.MapSlice {
	if d == nil {
		return yaml.MapSlice{}
	}

	top := make(yaml.MapSlice, 0, len(d.Sections))

	for _, sec := range d.Sections {
		if sec.Name == "" {
			for _, ent := range sec.Entries {
				top = append(top, yaml.MapItem{Key: ent.Name, Value: ent.Value})
			}

			continue
		}

		var body any // null for an empty section

		if len(sec.Entries) > 0 {
			m := make(yaml.MapSlice, len(sec.Entries))
			for i, ent := range sec.Entries {
				m[i] = yaml.MapItem{Key: ent.Name, Value: ent.Value}
			}

			body = m
		}

		top = append(top, yaml.MapItem{Key: sec.Name, Value: body})
	}

	return top
}

// FormatYAML writes the document as YAML to the writer, preserving order.
// An indent of zero or less selects flow style.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d.MapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// FormatJSON writes the document as JSON to the writer, preserving order.
// An indent of zero or less writes compact JSON.
func (d *Document) FormatJSON(ctx context.Context, w io.Writer, indent int) error {
	data, err := yaml.MarshalContext(ctx, d.MapSlice(), yaml.JSON())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if indent > 0 {
		err = json.Indent(&buf, bytes.TrimSpace(data), "", strings.Repeat(" ", indent))
	} else {
		err = json.Compact(&buf, data)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, buf.String())

	return err
}
