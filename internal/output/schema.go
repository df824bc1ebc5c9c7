// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
)

// Tag represents a discovered struct field tag used when emitting schema
// information (--schema flag).
type Tag struct {
	Kind     string
	Name     string
	Encoding string
}

// NewTag constructs a Tag from a raw jsonapi struct tag value and an optional
// holder prefix used to build hierarchical attribute names. Primary keys are
// reported as the root .id key.
func NewTag(h string, s string) Tag {
	tag := Tag{}

	parts := strings.Split(s, ",")
	switch parts[0] {
	case "attr":
		tag.Kind = "attr"
	case "primary":
		return Tag{Kind: "primary", Name: ".id"}
	default:
		return tag
	}

	if len(parts) > 1 {
		if h != "" {
			parts[1] = fmt.Sprintf("%s.%s", h, parts[1])
		}
		tag.Name = parts[1]
	}

	if len(parts) > 2 {
		tag.Encoding = parts[2]
	}

	return tag
}

// Print renders the tag into its display form.
func (t Tag) Print() (out string) {
	return t.Name
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// DumpSchema prints a sorted list of attribute keys for the provided type.
func DumpSchema(w io.Writer, prefix string, typ reflect.Type) {
	tags := DumpSchemaWalker(prefix, typ, 0)
	if len(tags) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Kind == tags[j].Kind {
			return tags[i].Name < tags[j].Name
		}
		// primary sorts ahead of attr.
		return tags[i].Kind > tags[j].Kind
	})

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w,
		`Keys that are directly available to the --attrs, --filter and --sort flags.
Root keys start with a dot. Use --output=raw to see the full document.`)
}

const maxSchemaDepth = 1

// DumpSchemaWalker recursively walks a struct type discovering jsonapi tags.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	tags := make([]Tag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("jsonapi")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Kind == "" {
			continue
		}

		tags = append(tags, tag)

		if tag.Kind != "attr" || depth >= maxSchemaDepth {
			continue
		}

		switch {
		case field.Type.Kind() == reflect.Struct:
			tags = append(tags, DumpSchemaWalker(tag.Name, field.Type, depth+1)...)
		case field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct:
			tags = append(tags, DumpSchemaWalker(tag.Name, field.Type.Elem(), depth+1)...)
		default:
			log.Debugf("presumed primitive field type: %s for %v", field.Type.Kind(), tag)
		}
	}

	return tags
}
