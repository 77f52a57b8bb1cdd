package serverutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"nutrilokal-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var waPhonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("wa_phone", func(fl validator.FieldLevel) bool {
		return waPhonePattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidateRequest validates a request DTO and reports the failures as an apperror.ErrValidation.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return apperror.Validation(strings.Join(msgs, "; "))
}
