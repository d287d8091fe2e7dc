package countdown

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// ErrInvalidTarget reports a target that cannot be resolved to an instant.
var ErrInvalidTarget = errors.New("invalid countdown target")

// ConfigError is returned when a target cannot be resolved.
type ConfigError struct {
	Input any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("countdown: invalid target %v: %v", e.Input, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidTarget) match any ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidTarget }

// DefaultTarget is local midnight, January 1st of the year after now.
func DefaultTarget(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(now.In(loc).Year()+1, time.January, 1, 0, 0, 0, 0, loc)
}

// ResolveTarget turns raw input into a target instant.
//
// Accepted inputs are time.Time, *time.Time, integer or float epoch values in
// milliseconds (also as numeric strings or json.Number), and date strings.
// Strings without a zone are read in loc. nil, a nil *time.Time and blank
// strings select DefaultTarget.
func ResolveTarget(raw any, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	switch v := raw.(type) {
	case nil:
		return DefaultTarget(now, loc), nil
	case time.Time:
		if v.IsZero() {
			return time.Time{}, &ConfigError{Input: raw, Err: errors.New("zero time")}
		}
		return v, nil
	case *time.Time:
		if v == nil {
			return DefaultTarget(now, loc), nil
		}
		return ResolveTarget(*v, now, loc)
	case int:
		return time.UnixMilli(int64(v)).In(loc), nil
	case int32:
		return time.UnixMilli(int64(v)).In(loc), nil
	case int64:
		return time.UnixMilli(v).In(loc), nil
	case uint32:
		return time.UnixMilli(int64(v)).In(loc), nil
	case float64:
		return fromMillisFloat(raw, v, loc)
	case json.Number:
		return ResolveTarget(v.String(), now, loc)
	case string:
		return parseTargetString(v, now, loc)
	default:
		return time.Time{}, &ConfigError{Input: raw, Err: fmt.Errorf("unsupported type %T", raw)}
	}
}

func fromMillisFloat(raw any, ms float64, loc *time.Location) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, &ConfigError{Input: raw, Err: errors.New("not a finite number")}
	}
	whole := math.Trunc(ms)
	nanos := int64((ms - whole) * float64(time.Millisecond))
	return time.UnixMilli(int64(whole)).Add(time.Duration(nanos)).In(loc), nil
}

func parseTargetString(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTarget(now, loc), nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).In(loc), nil
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMillisFloat(s, ms, loc)
	}

	t, err := cast.ToTimeInDefaultLocationE(s, loc)
	if err != nil {
		return time.Time{}, &ConfigError{Input: s, Err: err}
	}
	return t, nil
}
