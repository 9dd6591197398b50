package helper

import (
	"github.com/go-playground/validator/v10"
)

// Validator instance tunggal untuk seluruh DTO
var Validate = validator.New()

// ValidationErrorsToMap mengubah validator.ValidationErrors menjadi map field → pesan,
// siap dikirim lewat JsonValidationError.
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"invalid input"}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "wajib diisi"
		case "email":
			msg = "format email tidak valid"
		case "min":
			msg = "minimal " + fe.Param()
		case "max":
			msg = "maksimal " + fe.Param()
		case "oneof":
			msg = "harus salah satu dari: " + fe.Param()
		case "gte":
			msg = "harus >= " + fe.Param()
		default:
			msg = "format tidak valid"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
