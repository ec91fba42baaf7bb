package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
)

// RegisterValidators adds the custom binding tags to gin's validator and
// reports fields by their json or form name.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v.RegisterValidation("payment_mode", func(fl validator.FieldLevel) bool {
		_, err := enum.ParsePaymentMode(fl.Field().String())
		return err == nil
	})
}
