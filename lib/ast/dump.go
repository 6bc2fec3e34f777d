package ast

import (
	"reflect"
	"unicode"

	"github.com/vyPal/Carlos/lib/types"
)

// Dump converts a tree (analyzed or not) into maps and slices that
// encoding/json can write. Each node gets a "kind" key, expressions that
// have been analyzed get a "type" key, and types are rendered by their
// description so recursive struct types terminate.
func Dump(node any) any {
	return dump(reflect.ValueOf(node))
}

func dump(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return dump(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if t, ok := v.Interface().(types.Type); ok {
			return t.String()
		}
		out, ok := dump(v.Elem()).(map[string]any)
		if !ok {
			return dump(v.Elem())
		}
		if e, ok := v.Interface().(Expression); ok && e.Type() != nil {
			out["type"] = e.Type().String()
		}
		if n, ok := v.Interface().(Node); ok && n.Pos().Line > 0 {
			out["pos"] = n.Pos().String()
		}
		return out
	case reflect.Struct:
		t := v.Type()
		out := map[string]any{"kind": t.Name()}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Anonymous || !f.IsExported() {
				continue
			}
			if val := dump(v.Field(i)); val != nil {
				out[lowerFirst(f.Name)] = val
			}
		}
		return out
	case reflect.Slice:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = dump(v.Index(i))
		}
		return out
	}
	return v.Interface()
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
