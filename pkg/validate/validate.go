// Package validate checks struct fields against Laravel-style rules declared in
// a `validate` tag.
//
//	required            not blank / not zero
//	nullable            empty value skips the remaining rules
//	numeric, integer    parseable number / whole number
//	min=N, max=N        string: rune count bounds | number: value bounds
//	size=N              string: exactly N runes
//	gt, gte, lt, lte    numeric comparisons
//	digits=N            exactly N decimal digits
//	in=a|b|c            one of the listed values
//	regex=pattern       must match (pattern may not contain commas)
//	email, alpha_dash   format checks
//
// Field names in messages come from the `form` tag, then the `json` tag, then
// the lower-cased Go name.
//
//	type ProductInput struct {
//	    Name  string `form:"name"  validate:"required,max=255"`
//	    Price string `form:"price" validate:"required,numeric"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Errors maps a field name to its first failing message.
type Errors map[string]string

// Error renders the messages in field order.
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e[k]
	}
	return strings.Join(parts, " ")
}

// Add records msg for field unless it already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Struct validates every tagged field of v. A nil map means no errors.
func Struct(v any) Errors {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()

	var errs Errors
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := FieldName(field)
		value := rv.Field(i)
		list := strings.Split(tag, ",")

		if hasRule(list, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range list {
			if rule == "nullable" {
				continue
			}
			if msg := Rule(rule, name, value); msg != "" {
				if errs == nil {
					errs = Errors{}
				}
				errs.Add(name, msg)
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether errs carries at least one message.
func HasErrors(errs Errors) bool { return len(errs) > 0 }

type ruleFunc func(field, param, raw string, v reflect.Value) string

var rules = map[string]ruleFunc{
	"required": func(field, _, _ string, v reflect.Value) string {
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	},
	"numeric": func(field, _, raw string, _ reflect.Value) string {
		if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		return ""
	},
	"integer": func(field, _, raw string, _ reflect.Value) string {
		if _, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", field)
		}
		return ""
	},
	"min": func(field, param, raw string, v reflect.Value) string {
		n := parseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s field must be at least %s.", field, param)
			}
		} else if float64(runeLen(raw)) < n {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
		}
		return ""
	},
	"max": func(field, param, raw string, v reflect.Value) string {
		n := parseFloat(param)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s field must not be greater than %s.", field, param)
			}
		} else if float64(runeLen(raw)) > n {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, param)
		}
		return ""
	},
	"size": func(field, param, raw string, _ reflect.Value) string {
		if float64(runeLen(raw)) != parseFloat(param) {
			return fmt.Sprintf("The %s field must be %s characters.", field, param)
		}
		return ""
	},
	"gt":  compare(func(a, b float64) bool { return a > b }, "greater than"),
	"gte": compare(func(a, b float64) bool { return a >= b }, "greater than or equal to"),
	"lt":  compare(func(a, b float64) bool { return a < b }, "less than"),
	"lte": compare(func(a, b float64) bool { return a <= b }, "less than or equal to"),
	"digits": func(field, param, raw string, _ reflect.Value) string {
		if !digitsRE.MatchString(raw) || float64(len(raw)) != parseFloat(param) {
			return fmt.Sprintf("The %s field must be %s digits.", field, param)
		}
		return ""
	},
	"in": func(field, param, raw string, _ reflect.Value) string {
		for _, allowed := range strings.Split(param, "|") {
			if raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
	"regex": func(field, param, raw string, _ reflect.Value) string {
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(raw) {
			return fmt.Sprintf("The %s field format is invalid.", field)
		}
		return ""
	},
	"email": func(field, _, raw string, _ reflect.Value) string {
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		}
		return ""
	},
	"alpha_dash": func(field, _, raw string, _ reflect.Value) string {
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s field must only contain letters, numbers, dashes, and underscores.", field)
			}
		}
		return ""
	},
}

// Rule applies a single rule ("max=255") to v and returns the failure message,
// or "" when v passes. Unknown rules pass.
func Rule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(strings.TrimSpace(rule), "=")
	fn, ok := rules[key]
	if !ok {
		return ""
	}
	return fn(field, param, stringOf(v), v)
}

func compare(ok func(a, b float64) bool, phrase string) ruleFunc {
	return func(field, param, raw string, v reflect.Value) string {
		var f float64
		if isNumericKind(v) {
			f = toFloat(v)
		} else {
			var err error
			if f, err = strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
				return fmt.Sprintf("The %s field must be a number.", field)
			}
		}
		if !ok(f, parseFloat(param)) {
			return fmt.Sprintf("The %s field must be %s %s.", field, phrase, param)
		}
		return ""
	}
}

var (
	emailRE  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRE = regexp.MustCompile(`^\d+$`)
)

// FieldName is the name a struct field is reported under.
func FieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func stringOf(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func runeLen(s string) int { return len([]rune(s)) }

func hasRule(list []string, target string) bool {
	for _, r := range list {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
