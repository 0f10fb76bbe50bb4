package weather

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNoProviders is returned when the service has nothing to ask.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrInvalidDays is returned for a non-positive forecast horizon.
	ErrInvalidDays = errors.New("days must be greater than zero")
)

// ValidationError reports input the aggregator refuses to work with.
// Index is the offending sample position, or -1 when the problem is not
// tied to a sample.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid sample %d: %s %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// fromValidator converts the first validator failure into a ValidationError.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	reason := fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return &ValidationError{
		Field:  fe.Field(),
		Index:  -1,
		Reason: fmt.Sprintf("value %v fails %s", fe.Value(), reason),
	}
}
