package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Template codes are lowercase snake_case identifiers.
	TemplateCodePattern = `^[a-z][a-z0-9_]{1,63}$`

	// Report language codes are two lowercase letters (ISO 639-1).
	LanguagePattern = `^[a-z]{2}$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	TemplateCode *regexp.Regexp
	Language     *regexp.Regexp
}{
	TemplateCode: regexp.MustCompile(TemplateCodePattern),
	Language:     regexp.MustCompile(LanguagePattern),
}

// IsValidTemplateCode reports whether code can name a report template.
func IsValidTemplateCode(code string) bool {
	return CompiledPatterns.TemplateCode.MatchString(code)
}

// IsValidLanguage reports whether lang is a well-formed language code.
// Empty is valid; the pipeline falls back to its default language.
func IsValidLanguage(lang string) bool {
	return lang == "" || CompiledPatterns.Language.MatchString(lang)
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
