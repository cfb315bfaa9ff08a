package pwcg

import (
	"strconv"
	"strings"

	"github.com/antonholmquist/jason"

	"skylog/internal/application"
	"skylog/internal/domain"
)

// The record files drifted across PWCG versions: keys were renamed and
// numbers sometimes serialized as strings. The helpers below try each known
// key in order and coerce across the string/number divide.

func firstString(obj *jason.Object, keys ...string) (string, bool) {
	for _, key := range keys {
		v, err := obj.GetValue(key)
		if err != nil {
			continue
		}
		if s, err := v.String(); err == nil {
			return strings.TrimSpace(s), true
		}
		if n, err := v.Int64(); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		if f, err := v.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
	}
	return "", false
}

func firstInt64(obj *jason.Object, keys ...string) (int64, bool) {
	for _, key := range keys {
		v, err := obj.GetValue(key)
		if err != nil {
			continue
		}
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if s, err := v.String(); err == nil {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// firstCount handles fields stored either as a number or as a list whose
// length is the count (victories in newer aces files).
func firstCount(obj *jason.Object, keys ...string) (int, bool) {
	if n, ok := firstInt64(obj, keys...); ok {
		return int(n), true
	}
	for _, key := range keys {
		v, err := obj.GetValue(key)
		if err != nil {
			continue
		}
		if arr, err := v.Array(); err == nil {
			return len(arr), true
		}
	}
	return 0, false
}

func malformedDiag(path string, err error) domain.Diagnostic {
	wrapped := &application.MalformedRecordError{Path: path, Err: err}
	return domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Category: domain.DiagMalformedRecord,
		Path:     path,
		Message:  wrapped.Error(),
	}
}

func schemaDiag(path, message string) domain.Diagnostic {
	return domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Category: domain.DiagSchemaMismatch,
		Path:     path,
		Message:  message,
	}
}

func absentDiag(path, what string) domain.Diagnostic {
	return domain.Diagnostic{
		Severity: domain.SeverityInfo,
		Category: domain.DiagAbsentCategory,
		Path:     path,
		Message:  what + " absent",
	}
}
