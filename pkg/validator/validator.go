package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var (
	loginRegex  = regexp.MustCompile(`^[a-zA-Z0-9-]{3,30}$`)
	phoneRegex  = regexp.MustCompile(`^\+\d+$`)
	alpha2Regex = regexp.MustCompile(`^[a-zA-Z]{2}$`)
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
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

	_ = v.RegisterValidation("login", matches(loginRegex))
	_ = v.RegisterValidation("phone", matches(phoneRegex))
	_ = v.RegisterValidation("alpha2", matches(alpha2Regex))
	return v
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Struct checks s against its validate tags and returns one message per
// failing field. An empty result means s is valid.
func Struct(s any) ValidationErrors {
	errs := make(ValidationErrors)

	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Add("body", "Invalid request body")
		return errs
	}
	for _, fe := range fieldErrs {
		field := fieldPath(fe)
		if _, seen := errs[field]; seen {
			continue
		}
		errs.Add(field, message(fe))
	}
	return errs
}

// fieldPath drops the top-level struct name from the namespace, so
// "RegisterInput.login" becomes "login" and slice elements keep their index.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must have at least %s items", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must have at most %s items", fe.Param())
	case "email":
		return "Invalid email address"
	case "login":
		return "Login must be 3 to 30 letters, digits or dashes"
	case "phone":
		return "Phone must start with + followed by digits"
	case "alpha2":
		return "Country code must be two letters"
	default:
		return "Invalid value"
	}
}
