package servicedef

import (
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// IDString renders an identifier value for use in a URL path. It returns "" for anything that
// is not a usable identifier: null, an empty string, or a non-scalar value.
func IDString(v ldvalue.Value) string {
	switch v.Type() {
	case ldvalue.NumberType:
		if v.IsInt() {
			return strconv.Itoa(v.IntValue())
		}
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64)
	case ldvalue.StringType:
		return v.StringValue()
	default:
		return ""
	}
}

// Collection returns the items of a listing envelope {"collection": [...]}. A missing or null
// collection is treated as empty.
func Collection(listing ldvalue.Value) []ldvalue.Value {
	c := listing.GetByKey(CollectionField)
	ret := make([]ldvalue.Value, 0, c.Count())
	for i := 0; i < c.Count(); i++ {
		ret = append(ret, c.GetByIndex(i))
	}
	return ret
}
