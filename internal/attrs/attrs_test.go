// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var cases embed.FS

type setCase struct {
	Name      string `yaml:"name"`
	Initial   []Attr `yaml:"initial"`
	Value     string `yaml:"value"`
	WantLen   int    `yaml:"wantLen"`
	WantAttrs []Attr `yaml:"wantAttrs"`
	WantErr   bool   `yaml:"wantErr"`
}

type transformCase struct {
	Name          string `yaml:"name"`
	TransformSpec string `yaml:"transformSpec"`
	Input         any    `yaml:"input"`
	Want          any    `yaml:"want"`
}

type globalCase struct {
	Name      string   `yaml:"name"`
	Initial   []Attr   `yaml:"initial"`
	WantSpecs []string `yaml:"wantSpecs"`
	WantErr   bool     `yaml:"wantErr"`
}

type stringCase struct {
	Name     string `yaml:"name"`
	AttrList []Attr `yaml:"attrList"`
	Want     string `yaml:"want"`
}

// load decodes testdata/<file> into a slice of cases.
func load[T any](t *testing.T, file string) []T {
	t.Helper()
	data, err := cases.ReadFile("testdata/" + file)
	require.NoError(t, err)

	var out []T
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.NotEmpty(t, out, file)
	return out
}

func TestAttrList_Set(t *testing.T) {
	for _, tc := range load[setCase](t, "set_cases.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			al := AttrList(tc.Initial)
			err := al.Set(tc.Value)
			if tc.WantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, al, tc.WantLen)
			for i, want := range tc.WantAttrs {
				got := al[i]
				assert.Equal(t, want.Key, got.Key, "key %d", i)
				assert.Equal(t, want.OutputKey, got.OutputKey, "output key %d", i)
				assert.Equal(t, want.Include, got.Include, "include %d", i)
				assert.Equal(t, want.TransformSpec, got.TransformSpec, "transform %d", i)
			}
		})
	}
}

func TestAttrList_SetTodoSpec(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set(".id,title::u,userName:owner,!completed"))

	got := make([][3]string, len(al))
	for i, a := range al {
		got[i] = [3]string{a.Key, a.OutputKey, a.TransformSpec}
	}
	assert.Equal(t, [][3]string{
		{"id", "id", ""},
		{"attributes.title", "title", "u"},
		{"attributes.userName", "owner", ""},
		{"attributes.completed", "completed", ""},
	}, got)
	assert.False(t, al[3].Include)
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	for _, tc := range load[globalCase](t, "global_transform_cases.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			al := AttrList(tc.Initial)
			err := al.SetGlobalTransformSpec()
			if tc.WantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			specs := make([]string, len(al))
			for i, a := range al {
				specs[i] = a.TransformSpec
			}
			assert.Equal(t, tc.WantSpecs, specs)
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	for _, tc := range load[transformCase](t, "transform_cases.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			a := Attr{TransformSpec: tc.TransformSpec}
			assert.Equal(t, tc.Want, a.Transform(tc.Input))
		})
	}
}

func TestAttrList_String(t *testing.T) {
	for _, tc := range load[stringCase](t, "string_cases.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			al := AttrList(tc.AttrList)
			assert.Equal(t, tc.Want, al.String())
		})
	}
}

func TestAttrList_Type(t *testing.T) {
	var al AttrList
	assert.Equal(t, "list", al.Type())
}
