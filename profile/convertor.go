package profile

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fromCtyValue converts an evaluated HCL value into the native Go value a
// variable will hold. Numbers become int64 where the value is exact, float64
// otherwise; collections convert recursively.
func fromCtyValue(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return nil, err
		}
		return s, nil

	case ty.Equals(cty.Number):
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil

	case ty.Equals(cty.Bool):
		var b bool
		if err := gocty.FromCtyValue(val, &b); err != nil {
			return nil, err
		}
		return b, nil

	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			converted, err := fromCtyValue(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			var key string
			if err := gocty.FromCtyValue(kv, &key); err != nil {
				return nil, err
			}
			converted, err := fromCtyValue(ev)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	}

	return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
}
