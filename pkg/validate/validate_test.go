package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/backoffice/pkg/validate"
)

type clientForm struct {
	CategoryID  string `form:"category_id"  validate:"required,integer,gt=0"`
	ClientName  string `form:"client_name"  validate:"required,max=255"`
	ClientPhone string `form:"client_phone" validate:"required,size=11"`
	Note        string `json:"note"         validate:"nullable,alpha_dash"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(clientForm{
		CategoryID:  "1",
		ClientName:  "Acme",
		ClientPhone: "01712345678",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
	assert.Nil(t, errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(clientForm{ClientName: "   "})
	assert.Contains(t, errs, "category_id")
	assert.Contains(t, errs, "client_phone")
	assert.Equal(t, "The client_name field is required.", errs["client_name"])
	assert.NotContains(t, errs, "note")
}

func TestSizeCountsRunes(t *testing.T) {
	type in struct {
		Phone string `form:"phone" validate:"required,size=11"`
	}
	cases := map[string]bool{
		"0171234567":   false, // 10
		"01712345678":  true,  // 11
		"017123456789": false, // 12
		"০১৭১২৩৪৫৬৭৮":  true,  // 11 Bengali digits, 33 bytes
	}
	for phone, ok := range cases {
		errs := validate.Struct(in{Phone: phone})
		assert.Equal(t, ok, !validate.HasErrors(errs), "phone %q: %v", phone, errs)
	}
	errs := validate.Struct(in{Phone: "123"})
	assert.Equal(t, "The phone field must be 11 characters.", errs["phone"])
}

func TestNumericRule(t *testing.T) {
	type in struct {
		Price string `form:"price" validate:"required,numeric"`
	}
	assert.Empty(t, validate.Struct(in{Price: "19.99"}))
	assert.Empty(t, validate.Struct(in{Price: "-3"}))
	assert.Equal(t, "The price field must be a number.", validate.Struct(in{Price: "abc"})["price"])
}

func TestComparisonsOnStrings(t *testing.T) {
	type in struct {
		ID string `form:"id" validate:"integer,gt=0"`
	}
	assert.NotEmpty(t, validate.Struct(in{ID: "0"}))
	assert.NotEmpty(t, validate.Struct(in{ID: "x"}))
	assert.Empty(t, validate.Struct(in{ID: "4"}))
}

func TestNumericBoundsOnInts(t *testing.T) {
	type in struct {
		Qty int `json:"qty" validate:"min=1,max=10"`
	}
	assert.NotEmpty(t, validate.Struct(in{Qty: 0}))
	assert.NotEmpty(t, validate.Struct(in{Qty: 11}))
	assert.Empty(t, validate.Struct(in{Qty: 5}))
}

func TestInRule(t *testing.T) {
	type in struct {
		Disk string `form:"disk" validate:"required,in=local|s3|cloudinary"`
	}
	assert.Empty(t, validate.Struct(in{Disk: "s3"}))
	assert.Equal(t, "The selected disk is invalid.", validate.Struct(in{Disk: "ftp"})["disk"])
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Slug string `form:"slug" validate:"nullable,alpha_dash"`
	}
	assert.Empty(t, validate.Struct(in{}))
	assert.NotEmpty(t, validate.Struct(in{Slug: "hello world!"}))
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	assert.Equal(t, "The email field is required.", validate.Struct(in{})["email"])
	assert.Equal(t, "The email field must be a valid email address.", validate.Struct(in{Email: "nope"})["email"])
}

func TestErrorsString(t *testing.T) {
	errs := validate.Errors{}
	errs.Add("b", "B failed.")
	errs.Add("a", "A failed.")
	errs.Add("a", "ignored")
	assert.Equal(t, "A failed. B failed.", errs.Error())
}
