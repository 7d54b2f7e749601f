package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopatchy/hilite/pkg/errors"
)

// ToBool accepts a bool or, as properties files decode everything to
// strings, its text form.
func ToBool(a any) (bool, error) {
	switch v := a.(type) {
	case bool:
		return v, nil

	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%q: %w", v, errors.ErrInvalidType)
		}

		return b, nil

	default:
		return false, fmt.Errorf("%T: %w", a, errors.ErrInvalidType)
	}
}

func ToInt(a any) (int, error) {
	switch v := a.(type) {
	case int:
		return v, nil

	case int64:
		return int(v), nil

	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%v: %w", v, errors.ErrInvalidType)
		}

		return int(v), nil

	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", v, errors.ErrInvalidType)
		}

		return n, nil

	default:
		return 0, fmt.Errorf("%T: %w", a, errors.ErrInvalidType)
	}
}

func ToString(a any) (string, error) {
	v, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("%T: %w", a, errors.ErrInvalidType)
	}

	return v, nil
}

// ToStringList accepts a list of strings or a comma-separated string.
func ToStringList(a any) ([]string, error) {
	switch v := a.(type) {
	case nil:
		return nil, nil

	case string:
		ret := []string{}

		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				ret = append(ret, s)
			}
		}

		return ret, nil

	case []string:
		return v, nil

	case []any:
		ret := []string{}

		for _, x := range v {
			s, ok := x.(string)
			if !ok {
				return nil, fmt.Errorf("%T: %w", x, errors.ErrInvalidType)
			}

			ret = append(ret, s)
		}

		return ret, nil

	default:
		return nil, fmt.Errorf("%T: %w", a, errors.ErrInvalidType)
	}
}

func ToMap(a any) (map[string]any, error) {
	v, ok := a.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%T: %w", a, errors.ErrInvalidType)
	}

	return v, nil
}
