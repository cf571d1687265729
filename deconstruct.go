package tpa

import (
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/theperfectapp/tpa-bridge-go/api"
	"github.com/theperfectapp/tpa-bridge-go/util"
)

// DeconstructValue copies a dynamically typed value into plain Go values:
// nil, bool, float64, string, map[string]interface{} or []interface{}.
// The second return value is false for unset or unsupported kinds.
func DeconstructValue(value *structpb.Value) (interface{}, bool) {
	switch kind := value.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, true
	case *structpb.Value_BoolValue:
		return kind.BoolValue, true
	case *structpb.Value_NumberValue:
		return kind.NumberValue, true
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	case *structpb.Value_StructValue:
		return DeconstructMap(kind.StructValue), true
	case *structpb.Value_ListValue:
		return DeconstructList(kind.ListValue), true
	default:
		return nil, false
	}
}

// DeconstructMap recursively copies a struct into a plain map. Entries of
// unsupported kinds are skipped. A nil struct yields an empty map.
func DeconstructMap(s *structpb.Struct) map[string]interface{} {
	fields := s.GetFields()
	out := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		v, ok := DeconstructValue(value)
		if !ok {
			util.Debugf("Skipping value of unsupported kind for key %q", key)
			continue
		}
		out[key] = v
	}
	return out
}

// DeconstructList recursively copies a list into a plain slice. Elements of
// unsupported kinds are skipped, so the result may be shorter than the input.
func DeconstructList(l *structpb.ListValue) []interface{} {
	values := l.GetValues()
	out := make([]interface{}, 0, len(values))
	for i, value := range values {
		v, ok := DeconstructValue(value)
		if !ok {
			util.Debugf("Skipping value of unsupported kind at index %d", i)
			continue
		}
		out = append(out, v)
	}
	return out
}

// DeconstructTags flattens a struct into a tag dictionary. Strings pass
// through, booleans and numbers are converted to their canonical string
// form and null keeps the key with an empty value. Nested structs, lists
// and unsupported kinds are dropped.
func DeconstructTags(s *structpb.Struct) api.Tags {
	if s == nil {
		return nil
	}
	tags := make(api.Tags, len(s.GetFields()))
	for key, value := range s.GetFields() {
		switch kind := value.GetKind().(type) {
		case *structpb.Value_NullValue:
			tags[key] = ""
		case *structpb.Value_BoolValue:
			tags[key] = strconv.FormatBool(kind.BoolValue)
		case *structpb.Value_NumberValue:
			tags[key] = formatNumber(kind.NumberValue)
		case *structpb.Value_StringValue:
			tags[key] = kind.StringValue
		default:
			util.Debugf("Dropping tag %q: only strings, numbers and booleans are supported", key)
		}
	}
	return tags
}

// TagsFromMap is DeconstructTags for plain Go maps.
func TagsFromMap(m map[string]interface{}) api.Tags {
	if m == nil {
		return nil
	}
	return DeconstructTags(NewStruct(m))
}

// TagString converts a single scalar to its tag representation.
func TagString(value interface{}) (string, bool) {
	v := NewValue(value)
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "", true
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue), true
	case *structpb.Value_NumberValue:
		return formatNumber(kind.NumberValue), true
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	default:
		return "", false
	}
}

func formatNumber(n float64) string {
	if math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// NewValue converts a plain Go value into the tagged value representation.
// All integer and float widths are widened to float64. Unsupported kinds
// return nil instead of an error.
func NewValue(value interface{}) *structpb.Value {
	switch v := value.(type) {
	case nil:
		return structpb.NewNullValue()
	case *structpb.Value:
		return v
	case bool:
		return structpb.NewBoolValue(v)
	case string:
		return structpb.NewStringValue(v)
	case float64:
		return structpb.NewNumberValue(v)
	case float32:
		return structpb.NewNumberValue(float64(v))
	case int:
		return structpb.NewNumberValue(float64(v))
	case int8:
		return structpb.NewNumberValue(float64(v))
	case int16:
		return structpb.NewNumberValue(float64(v))
	case int32:
		return structpb.NewNumberValue(float64(v))
	case int64:
		return structpb.NewNumberValue(float64(v))
	case uint:
		return structpb.NewNumberValue(float64(v))
	case uint8:
		return structpb.NewNumberValue(float64(v))
	case uint16:
		return structpb.NewNumberValue(float64(v))
	case uint32:
		return structpb.NewNumberValue(float64(v))
	case uint64:
		return structpb.NewNumberValue(float64(v))
	case map[string]interface{}:
		return structpb.NewStructValue(NewStruct(v))
	case map[string]string:
		m := make(map[string]interface{}, len(v))
		for key, s := range v {
			m[key] = s
		}
		return structpb.NewStructValue(NewStruct(m))
	case api.Tags:
		return NewValue(map[string]string(v))
	case *structpb.Struct:
		return structpb.NewStructValue(v)
	case []interface{}:
		return structpb.NewListValue(NewList(v))
	case []string:
		l := make([]interface{}, len(v))
		for i, s := range v {
			l[i] = s
		}
		return structpb.NewListValue(NewList(l))
	case *structpb.ListValue:
		return structpb.NewListValue(v)
	default:
		util.Debugf("Unsupported value type %T", value)
		return nil
	}
}

// NewStruct converts a plain map, skipping entries of unsupported kinds.
func NewStruct(m map[string]interface{}) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(m))}
	for key, value := range m {
		if v := NewValue(value); v != nil {
			s.Fields[key] = v
		}
	}
	return s
}

// NewList converts a plain slice, skipping elements of unsupported kinds.
func NewList(l []interface{}) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(l))}
	for _, value := range l {
		if v := NewValue(value); v != nil {
			list.Values = append(list.Values, v)
		}
	}
	return list
}
