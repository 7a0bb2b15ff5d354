package request

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/storefront/internal/presentation/http/response"
	"github.com/Additional-Code/storefront/pkg/errorbank"
)

// FieldError describes one rejected input location.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Validator adapts go-playground/validator to echo.Validator, reporting fields by their JSON
// names.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the request validator.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// Bind decodes the JSON body into dst and validates it. Shape problems come back as an
// unprocessable errorbank error listing every offending field.
func Bind(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return bindError(err)
	}
	if err := c.Validate(dst); err != nil {
		return validationError(err)
	}
	return nil
}

// ParamID parses the named path parameter as a record id.
func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, Invalid(FieldError{
			Loc:  []string{"path", name},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}, errorbank.WithCause(err))
	}
	return id, nil
}

// Invalid wraps a field error into an unprocessable errorbank error.
func Invalid(field FieldError, opts ...errorbank.Option) *errorbank.AppError {
	return invalid([]FieldError{field}, opts...)
}

func invalid(fields []FieldError, opts ...errorbank.Option) *errorbank.AppError {
	opts = append(opts, errorbank.WithDetail(response.DetailKey, fields))
	return errorbank.Unprocessable("request validation failed", opts...)
}

func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		kind := typeName(typeErr.Type)
		return Invalid(FieldError{
			Loc:  bodyLoc(typeErr.Field),
			Msg:  "value is not a valid " + kind,
			Type: "type_error." + kind,
		}, errorbank.WithCause(err))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return Invalid(FieldError{
			Loc:  []string{"body", strconv.FormatInt(syntaxErr.Offset, 10)},
			Msg:  "JSON decode error",
			Type: "value_error.jsondecode",
		}, errorbank.WithCause(err))
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code != http.StatusBadRequest {
		return httpErr
	}

	return Invalid(FieldError{
		Loc:  []string{"body"},
		Msg:  "invalid request body",
		Type: "value_error",
	}, errorbank.WithCause(err))
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorbank.Internal("validate request", errorbank.WithCause(err))
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := FieldError{Loc: bodyLoc(fe.Field())}
		switch fe.Tag() {
		case "required":
			field.Msg = "field required"
			field.Type = "value_error.missing"
		default:
			field.Msg = "failed on the '" + fe.Tag() + "' rule"
			field.Type = "value_error." + fe.Tag()
		}
		fields = append(fields, field)
	}
	return invalid(fields)
}

func bodyLoc(field string) []string {
	loc := []string{"body"}
	if field != "" {
		loc = append(loc, strings.Split(field, ".")...)
	}
	return loc
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "str"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	default:
		return t.Kind().String()
	}
}
