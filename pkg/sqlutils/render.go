package sqlutils

import (
	"fmt"
	"strconv"
	"time"
)

// renderScalar maps a driver-provided value to its canonical textual
// representation. The mapping is fixed so that key encoding and file
// content are deterministic across drivers:
//
//	NULL          -> ""
//	integer       -> base-10 digits
//	real          -> strconv 'g' shortest form
//	text / bytes  -> the bytes as-is
//	boolean       -> "true" / "false"
//	time          -> RFC 3339
func renderScalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// renderValue turns a fetched column value into file content. Blob columns
// are served verbatim; every other affinity is served as the UTF-8 text of
// the value's canonical representation, with no trailing terminator.
func renderValue(v any, affinity Affinity) []byte {
	if b, ok := v.([]byte); ok && affinity == AffinityBlob {
		return b
	}
	return []byte(renderScalar(v))
}
