package tpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theperfectapp/tpa-bridge-go/api"
)

func TestDeconstructMap(t *testing.T) {
	input := mustStruct(t, map[string]interface{}{
		"name":    "checkout",
		"count":   3.0,
		"enabled": true,
		"missing": nil,
		"nested": map[string]interface{}{
			"items": []interface{}{"a", 1.5, false, nil},
		},
	})

	out := DeconstructMap(input)
	assert.Equal(t, map[string]interface{}{
		"name":    "checkout",
		"count":   3.0,
		"enabled": true,
		"missing": nil,
		"nested": map[string]interface{}{
			"items": []interface{}{"a", 1.5, false, nil},
		},
	}, out)

	t.Run("nil struct yields an empty map", func(t *testing.T) {
		out := DeconstructMap(nil)
		require.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("round trip is stable", func(t *testing.T) {
		again := DeconstructMap(NewStruct(out))
		assert.Equal(t, out, again)
	})

	t.Run("unset kinds are skipped", func(t *testing.T) {
		s := &structpb.Struct{Fields: map[string]*structpb.Value{
			"ok":    structpb.NewStringValue("yes"),
			"unset": {},
		}}
		assert.Equal(t, map[string]interface{}{"ok": "yes"}, DeconstructMap(s))
	})
}

func TestDeconstructList(t *testing.T) {
	l := &structpb.ListValue{Values: []*structpb.Value{
		structpb.NewNumberValue(1),
		{},
		structpb.NewStringValue("two"),
	}}
	assert.Equal(t, []interface{}{1.0, "two"}, DeconstructList(l))
	assert.Empty(t, DeconstructList(nil))
}

func TestDeconstructTags(t *testing.T) {
	input := mustStruct(t, map[string]interface{}{
		"a": true,
		"b": 3.5,
		"c": "x",
		"d": nil,
		"e": map[string]interface{}{"nested": 1.0},
		"f": []interface{}{"dropped"},
	})

	tags := DeconstructTags(input)
	assert.Equal(t, api.Tags{"a": "true", "b": "3.5", "c": "x", "d": ""}, tags)
	assert.NotContains(t, tags, "e")
	assert.NotContains(t, tags, "f")

	assert.Nil(t, DeconstructTags(nil))
	assert.Equal(t, api.Tags{}, DeconstructTags(&structpb.Struct{}))
}

func TestTagString(t *testing.T) {
	testCases := []struct {
		name     string
		value    interface{}
		expected string
		ok       bool
	}{
		{"string", "optimus prime", "optimus prime", true},
		{"integral float", 42.0, "42", true},
		{"fraction", 0.25, "0.25", true},
		{"negative", -7.5, "-7.5", true},
		{"int", 42, "42", true},
		{"large", 1e21, "1e+21", true},
		{"bool", false, "false", true},
		{"nil", nil, "", true},
		{"map", map[string]interface{}{"a": 1}, "", false},
		{"unsupported", struct{}{}, "", false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			s, ok := TagString(testCase.value)
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.expected, s)
		})
	}
}

func TestTagsFromMap(t *testing.T) {
	assert.Nil(t, TagsFromMap(nil))
	assert.Equal(t, api.Tags{"screen": "home", "step": "2"}, TagsFromMap(map[string]interface{}{
		"screen": "home",
		"step":   int64(2),
		"skip":   []string{"x"},
	}))
}

func TestNewValue(t *testing.T) {
	assert.Nil(t, NewValue(make(chan int)))
	assert.Equal(t, 8.0, NewValue(uint8(8)).GetNumberValue())
	assert.Equal(t, "v", NewValue(api.Tags{"k": "v"}).GetStructValue().GetFields()["k"].GetStringValue())
	assert.Len(t, NewValue([]string{"a", "b"}).GetListValue().GetValues(), 2)

	s := NewStruct(map[string]interface{}{"keep": 1, "drop": func() {}})
	assert.Len(t, s.GetFields(), 1)
}
