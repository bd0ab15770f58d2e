package tools

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	apperrors "scribe/internal/app/errors"
)

// coerce checks raw against params: missing required values fail, missing
// optional values take their default, and every present value is converted
// to its declared type. Undeclared arguments are dropped.
func coerce(params []Parameter, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(params))

	for _, p := range params {
		value, ok := raw[p.Name]
		if !ok || value == nil {
			if p.Required {
				return nil, apperrors.RequiredField(p.Name)
			}
			if p.Default != nil {
				out[p.Name] = p.Default
			}
			continue
		}

		converted, err := convert(p.Type, value)
		if err != nil {
			return nil, apperrors.InvalidField(p.Name, fmt.Sprintf("expected %s, got %v", p.Type, value))
		}
		out[p.Name] = converted
	}

	return out, nil
}

func convert(t ParamType, value any) (any, error) {
	switch t {
	case TypeString:
		switch value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("not a scalar")
		}
		return cast.ToStringE(value)
	case TypeNumber:
		v, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("not a finite number")
		}
		return v, nil
	case TypeInteger:
		switch v := value.(type) {
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 0)
			if err != nil {
				return nil, err
			}
			return int(n), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("not an integer")
			}
		}
		return cast.ToIntE(value)
	case TypeBoolean:
		return cast.ToBoolE(value)
	default:
		return nil, fmt.Errorf("unknown parameter type %q", t)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// bind decodes coerced arguments into dst and validates its struct tags.
func bind(args map[string]any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  dst,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return apperrors.ErrArgumentValidation.Wrap(err, "decode arguments")
	}

	if err := validate.Struct(dst); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return apperrors.ErrArgumentValidation.Withf("%s", formatValidationErrors(verrs))
		}
		return apperrors.ErrArgumentValidation.Wrap(err, "validate arguments")
	}
	return nil
}

func formatValidationErrors(verrs validator.ValidationErrors) string {
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "gte", "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "lte", "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}
