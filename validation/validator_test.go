package validation

import (
	"testing"
)

func validForm() Form {
	return Form{
		FullName:  "Al",
		Age:       "30",
		Gender:    "Male",
		Email:     "a@b.co",
		Phone:     "1234567",
		Goal:      "Weight Loss",
		StartDate: "2025-01-01",
	}
}

func TestValidateFormValid(t *testing.T) {
	res := ValidateForm(validForm())

	if !res.Valid {
		t.Errorf("expected valid form, got errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("error map should be empty, got %v", res.Errors)
	}
}

func TestValidateFormAllRulesIndependent(t *testing.T) {
	res := ValidateForm(Form{
		FullName: "A",
		Age:      "200",
		Email:    "bad",
		Phone:    "12",
	})

	if res.Valid {
		t.Fatal("expected invalid form")
	}

	for _, field := range []string{"fullName", "age", "email", "phone", "gender", "goal", "startDate"} {
		if msg, ok := res.Errors[field]; !ok || msg == "" {
			t.Errorf("missing error message for %q: %v", field, res.Errors)
		}
	}
}

func TestValidateFormFieldRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Form)
		badKeys []string
	}{
		{"whitespace name", func(f *Form) { f.FullName = "  A  " }, []string{"fullName"}},
		{"age not a number", func(f *Form) { f.Age = "abc" }, []string{"age"}},
		{"age zero", func(f *Form) { f.Age = "0" }, []string{"age"}},
		{"age too high", func(f *Form) { f.Age = "121" }, []string{"age"}},
		{"unknown gender", func(f *Form) { f.Gender = "Unknown" }, []string{"gender"}},
		{"email without dot in domain", func(f *Form) { f.Email = "a@bco" }, []string{"email"}},
		{"email with space", func(f *Form) { f.Email = "a b@c.co" }, []string{"email"}},
		{"phone too short", func(f *Form) { f.Phone = "123456" }, []string{"phone"}},
		{"phone with letters", func(f *Form) { f.Phone = "12345abc67" }, []string{"phone"}},
		{"unknown goal", func(f *Form) { f.Goal = "Get Swole" }, []string{"goal"}},
		{"missing start date", func(f *Form) { f.StartDate = "" }, []string{"startDate"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			res := ValidateForm(form)
			if res.Valid {
				t.Fatal("expected invalid form")
			}
			if len(res.Errors) != len(tc.badKeys) {
				t.Errorf("errors = %v, want keys %v", res.Errors, tc.badKeys)
			}
			for _, key := range tc.badKeys {
				if _, ok := res.Errors[key]; !ok {
					t.Errorf("missing error for %q in %v", key, res.Errors)
				}
			}
		})
	}
}

func TestValidateFormAcceptsPhonePunctuation(t *testing.T) {
	form := validForm()
	form.Phone = "+1 (555) 123-4567"

	if res := ValidateForm(form); !res.Valid {
		t.Errorf("phone with punctuation rejected: %v", res.Errors)
	}
}

func TestFormInput(t *testing.T) {
	form := validForm()
	form.FullName = " Alice Carter "
	form.Age = " 30 "
	form.GoalText = " drop 5kg "

	in := form.Input()
	if in.FullName != "Alice Carter" {
		t.Errorf("FullName = %q, want trimmed", in.FullName)
	}
	if in.Age != 30 {
		t.Errorf("Age = %d, want 30", in.Age)
	}
	if in.GoalText != "drop 5kg" {
		t.Errorf("GoalText = %q, want trimmed", in.GoalText)
	}
}
