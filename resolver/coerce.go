package resolver

import (
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/units"
	"github.com/xhit/go-str2duration/v2"
)

// coerce converts raw values from src into the spec's declared kind.
// Command-line values arrive one token per element; config file and
// environment values are a single comma-separated string.
func (s *boundSpec) coerce(src Source, raws []string) (any, error) {
	if s.Kind == KindConst {
		return s.Const, nil
	}

	if s.Multiple {
		if src != SourceCommandLine {
			raws = splitList(raws[len(raws)-1])
		}
		value, bad, err := parseList(s.Kind, raws)
		if err != nil {
			return nil, s.coercionError(src, bad, err)
		}
		return value, nil
	}

	raw := raws[len(raws)-1]
	value, err := parseScalar(s.Kind, raw)
	if err != nil {
		return nil, s.coercionError(src, raw, err)
	}
	return value, nil
}

func (s *boundSpec) coercionError(src Source, raw string, err error) error {
	return &CoercionError{Name: s.Name, Kind: s.Kind, Source: src, Value: raw, Err: err}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func parseScalar(kind Kind, raw string) (any, error) {
	switch kind {
	case KindInt:
		return parseInt(raw)
	case KindFloat:
		return parseFloat(raw)
	case KindBool:
		return parseBool(raw)
	case KindDuration:
		return parseDuration(raw)
	case KindBytes:
		return parseBytes(raw)
	default:
		return raw, nil
	}
}

func parseList(kind Kind, raws []string) (any, string, error) {
	switch kind {
	case KindInt:
		return collect(raws, parseInt)
	case KindFloat:
		return collect(raws, parseFloat)
	case KindBool:
		return collect(raws, parseBool)
	case KindDuration:
		return collect(raws, parseDuration)
	case KindBytes:
		return collect(raws, parseBytes)
	default:
		return collect(raws, parseString)
	}
}

// collect parses every element, returning the first offending raw value on failure.
func collect[T any](raws []string, parse func(string) (T, error)) (any, string, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := parse(raw)
		if err != nil {
			return nil, raw, err
		}
		out = append(out, v)
	}
	return out, "", nil
}

func parseString(raw string) (string, error) {
	return raw, nil
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

func parseFloat(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func parseBool(raw string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(raw))
}

// parseDuration accepts Go durations plus day and week units ("1d12h", "2w").
func parseDuration(raw string) (time.Duration, error) {
	return str2duration.ParseDuration(strings.TrimSpace(raw))
}

func parseBytes(raw string) (int64, error) {
	b, err := units.ParseBase2Bytes(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return int64(b), nil
}
