package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"coach-crm/models"
)

// Form carries raw submitted field values. Age and dates arrive as
// strings, exactly as a form posts them.
type Form struct {
	FullName  string `json:"fullName" validate:"required,fullname"`
	Age       string `json:"age" validate:"required,agerange"`
	Gender    string `json:"gender" validate:"required,gender"`
	Email     string `json:"email" validate:"required,emailaddr"`
	Phone     string `json:"phone" validate:"required,phonenumber"`
	Goal      string `json:"goal" validate:"required,goal"`
	GoalText  string `json:"goalText"`
	StartDate string `json:"startDate" validate:"required"`
}

// Result maps offending field names to user-facing messages. Rules are
// checked independently, never short-circuited across fields.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

var (
	// local@domain.tld, no whitespace around the @, at least one dot in
	// the domain part.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s\-()+]{7,20}$`)
)

var messages = map[string]string{
	"fullName":  "Full name must be at least 2 characters",
	"age":       "Age must be a whole number between 1 and 120",
	"gender":    "Please select a gender",
	"email":     "Please enter a valid email address",
	"phone":     "Please enter a valid phone number",
	"goal":      "Please select a goal",
	"startDate": "Please choose a start date",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their json names so the error map matches the
	// wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return len(strings.TrimSpace(fl.Field().String())) >= 2
	})
	v.RegisterValidation("agerange", func(fl validator.FieldLevel) bool {
		age, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && age >= 1 && age <= 120
	})
	v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return contains(models.Genders, fl.Field().String())
	})
	v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("phonenumber", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	v.RegisterValidation("goal", func(fl validator.FieldLevel) bool {
		return contains(models.Goals, fl.Field().String())
	})

	return v
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// ValidateForm checks every rule and never mutates anything; the error
// map is its sole output.
func ValidateForm(form Form) Result {
	res := Result{Valid: true, Errors: map[string]string{}}

	err := validate.Struct(form)
	if err == nil {
		return res
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Valid = false
		res.Errors["form"] = "Invalid form submission"
		return res
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := res.Errors[field]; seen {
			continue
		}
		msg, ok := messages[field]
		if !ok {
			msg = "Invalid value"
		}
		res.Errors[field] = msg
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// Input converts a validated form into repository input. Call only
// after ValidateForm reports valid.
func (f Form) Input() models.ClientInput {
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	return models.ClientInput{
		FullName:  strings.TrimSpace(f.FullName),
		Age:       age,
		Gender:    f.Gender,
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Goal:      f.Goal,
		GoalText:  strings.TrimSpace(f.GoalText),
		StartDate: f.StartDate,
	}
}
