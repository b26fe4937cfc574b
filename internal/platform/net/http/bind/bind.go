// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "tglang/internal/platform/errors"
	"tglang/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel so callers can write custom tags without the import
type FieldLevel = validator.FieldLevel

// ValidatorSvc holds the validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the process validator, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")

		_ = v.RegisterValidation("maxbytes", maxBytes)
		translate(v, trans, "maxbytes", "{0} must be at most {1} bytes")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// RegisterValidation adds a custom tag with an english message; {0} is the field, {1} the param
func RegisterValidation(tag, message string, fn func(FieldLevel) bool) error {
	s := Get()
	if err := s.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	translate(s.Validator, s.Translator, tag, message)
	return nil
}

// Struct validates v and maps the first failure to a Validation error carrying the field
func Struct(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.Wrap(inv, perr.ErrorCodeUnknown, "validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}

// JSONOptions controls parsing
type JSONOptions struct {
	MaxBytes       int64 // 0 means 1 MiB
	AllowUnknown   bool
	AllowEmptyBody bool
}

// ParseJSON decodes a single JSON value into T and validates it.
// Oversized bodies are TooLarge, malformed ones JSON, invalid ones Validation
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, dst T
	var o JSONOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 1 << 20
	}

	body := http.MaxBytesReader(nil, r.Body, o.MaxBytes)
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			return zero, perr.TooLargef("body exceeds %d bytes", tooBig.Limit)
		case errors.Is(err, io.EOF):
			if !o.AllowEmptyBody {
				return zero, perr.JSONErrf("empty body")
			}
		default:
			return zero, perr.JSONErrf("invalid JSON: %v", err)
		}
	} else if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// maxBytes bounds the UTF-8 length of a string, unlike max which counts runes
func maxBytes(fl FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	return len(f.String()) <= limit
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
