package orchestrator

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// Sanitize walks v (typically an *AnalysisResult) and returns a JSON-safe
// tree: maps, slices, and finite scalars only. encoding/json refuses to
// marshal NaN/Infinity outright, so this runs once, ahead of serialization,
// replacing every non-finite float with nil (renders as null), per spec
// §6.3's "no NaN/Infinity in emitted result" rule.
func Sanitize(v interface{}) interface{} {
	return sanitizeValue(reflect.ValueOf(v))
}

var timeType = reflect.TypeOf(time.Time{})

func sanitizeValue(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return sanitizeValue(v.Elem())
	case reflect.Struct:
		if v.Type() == timeType {
			return v.Interface()
		}
		return sanitizeStruct(v)
	case reflect.Map:
		out := make(map[string]interface{}, v.Len())
		for _, key := range v.MapKeys() {
			out[fmt.Sprint(key.Interface())] = sanitizeValue(v.MapIndex(key))
		}
		return out
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = sanitizeValue(v.Index(i))
		}
		return out
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	default:
		return v.Interface()
	}
}

func sanitizeStruct(v reflect.Value) map[string]interface{} {
	t := v.Type()
	out := make(map[string]interface{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}

		name := field.Name
		omitEmpty := false
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitEmpty = true
				}
			}
		}

		fv := v.Field(i)
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		out[name] = sanitizeValue(fv)
	}
	return out
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// MarshalJSON makes AnalysisResult safe to pass directly to json.Marshal or
// an http.ResponseWriter encoder without callers remembering to sanitize first.
func (r *AnalysisResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(Sanitize(r))
}
