package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

// toLogAttrWire flattens a slog.Attr into the wire representation. group, if
// non-empty, qualifies the key ("group.key").
func toLogAttrWire(group string, attr slog.Attr) wireformat.LogAttrWire {
	wire := wireformat.LogAttrWire{Key: attr.Key}
	if group != "" {
		wire.Key = group + "." + attr.Key
	}

	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = strconv.FormatInt(attr.Value.Int64(), 10)
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = strconv.FormatUint(attr.Value.Uint64(), 10)
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = strconv.FormatBool(attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = strconv.FormatFloat(attr.Value.Float64(), 'f', -1, 64)
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindAny:
		v := attr.Value.Any()
		if v == nil {
			wire.Type = "any"
			wire.Value = "<nil>"
			break
		}
		if err, ok := v.(error); ok {
			wire.Type = "error"
			wire.Value = err.Error()
			break
		}
		if data, err := json.Marshal(v); err == nil {
			wire.Type = "json"
			wire.Value = string(data)
			break
		}
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", v)
	default:
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return wire
}
