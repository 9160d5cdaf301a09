package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrContract marks a biography document that violates the data contract.
var ErrContract = errors.New("biography data contract violation")

// ContractError lists every violation found in one validation pass.
type ContractError struct {
	Violations []string
}

func (e *ContractError) Error() string {
	return ErrContract.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *ContractError) Unwrap() error {
	return ErrContract
}

const (
	tagParity       = "parity"
	tagSameStatus   = "same_status"
	tagSameExpiry   = "same_expiry"
	recordNamespace = "BiographyRecord."
)

var contract = newContractValidator()

func newContractValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("model: register notblank: %v", err))
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(validatePairs, BiographyRecord{})
	return v
}

// Validate enforces locale presence, zh/en parity and the project status enum.
func (r *BiographyRecord) Validate() error {
	if r == nil {
		return &ContractError{Violations: []string{"record is nil"}}
	}
	err := contract.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate biography: %w", err)
	}
	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, describe(fe))
	}
	return &ContractError{Violations: violations}
}

// validatePairs checks what field tags cannot: that both locales list the same
// number of entries and agree on per-entry facts.
func validatePairs(sl validator.StructLevel) {
	rec, ok := sl.Current().Interface().(BiographyRecord)
	if !ok {
		return
	}
	checkParity(sl, "experience", len(rec.Experience.ZH), len(rec.Experience.EN), rec.Experience.ZH != nil && rec.Experience.EN != nil)
	checkParity(sl, "education", len(rec.Education.ZH), len(rec.Education.EN), rec.Education.ZH != nil && rec.Education.EN != nil)
	checkParity(sl, "skills", len(rec.Skills.ZH), len(rec.Skills.EN), rec.Skills.ZH != nil && rec.Skills.EN != nil)
	checkParity(sl, "certifications", len(rec.Certifications.ZH), len(rec.Certifications.EN), rec.Certifications.ZH != nil && rec.Certifications.EN != nil)
	checkParity(sl, "projects", len(rec.Projects.ZH), len(rec.Projects.EN), rec.Projects.ZH != nil && rec.Projects.EN != nil)

	if len(rec.Projects.ZH) == len(rec.Projects.EN) {
		for i, zh := range rec.Projects.ZH {
			en := rec.Projects.EN[i]
			if zh.Status != en.Status {
				name := fmt.Sprintf("projects[%d].status", i)
				sl.ReportError(en.Status, name, name, tagSameStatus, fmt.Sprintf("zh=%s en=%s", zh.Status, en.Status))
			}
		}
	}
	if len(rec.Certifications.ZH) == len(rec.Certifications.EN) {
		for i, zh := range rec.Certifications.ZH {
			if (zh.ExpiryDate == nil) != (rec.Certifications.EN[i].ExpiryDate == nil) {
				name := fmt.Sprintf("certifications[%d].expiryDate", i)
				sl.ReportError(rec.Certifications.EN[i].ExpiryDate, name, name, tagSameExpiry, "")
			}
		}
	}
}

func checkParity(sl validator.StructLevel, field string, zhLen, enLen int, bothPresent bool) {
	if !bothPresent || zhLen == enLen {
		return
	}
	sl.ReportError(enLen, field, field, tagParity, fmt.Sprintf("%d zh entries but %d en entries", zhLen, enLen))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), recordNamespace)
	switch fe.Tag() {
	case "required":
		return field + " is missing"
	case "notblank":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s %q is not one of %s", field, fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case tagParity:
		return field + " has " + fe.Param()
	case tagSameStatus:
		return fmt.Sprintf("%s differs between locales (%s)", field, fe.Param())
	case tagSameExpiry:
		return field + " present in only one locale"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
