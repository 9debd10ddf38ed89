package httpx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"brickinv/internal/entity"
)

var validate *validator.Validate

var (
	setNoPattern  = regexp.MustCompile(`^[0-9A-Za-z-]{2,20}$`)
	partNoPattern = regexp.MustCompile(`^[0-9A-Za-z.-]{1,24}$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("set_no", validateSetNo)
	validate.RegisterValidation("part_no", validatePartNo)
	validate.RegisterValidation("piece_state", validatePieceState)
}

func validateSetNo(fl validator.FieldLevel) bool {
	return setNoPattern.MatchString(fl.Field().String())
}

func validatePartNo(fl validator.FieldLevel) bool {
	return partNoPattern.MatchString(fl.Field().String())
}

func validatePieceState(fl validator.FieldLevel) bool {
	return entity.PieceState(fl.Field().String()).Valid()
}

func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "set_no":
			message = fmt.Sprintf("%s must be 2-20 characters of letters, digits, or dashes", field)
		case "part_no":
			message = fmt.Sprintf("%s must be 1-24 characters of letters, digits, dots, or dashes", field)
		case "piece_state":
			message = fmt.Sprintf("%s must be one of MISSING, OWNED_LOCKED, OWNED_FREE", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "lte":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		details = append(details, ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return details
}
