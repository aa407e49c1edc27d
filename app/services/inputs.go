package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/backoffice/pkg/upload"
	"github.com/shashiranjanraj/backoffice/pkg/validate"
)

// DefaultImageMaxKB is the largest accepted image, in KiB.
const DefaultImageMaxKB = 2048

// CategoryInput is the create/update form for a category.
type CategoryInput struct {
	CategoryName string       `form:"category_name" validate:"required,max=255"`
	Image        *upload.File `form:"-"` // bound from the file part
}

// Validate checks the input without touching any store.
func (in CategoryInput) Validate() error { return in.validate(DefaultImageMaxKB) }

func (in CategoryInput) validate(maxKB int64) error {
	in = in.trimmed()
	return invalid(withImage(validate.Struct(in), in.Image, maxKB))
}

// trimmed strips surrounding whitespace from every text field.
func (in CategoryInput) trimmed() CategoryInput {
	in.CategoryName = strings.TrimSpace(in.CategoryName)
	return in
}

// ClientInput is the create/update form for a client.
type ClientInput struct {
	CategoryID  string       `form:"category_id"  validate:"required,integer,gt=0"`
	ClientName  string       `form:"client_name"  validate:"required,max=255"`
	ClientPhone string       `form:"client_phone" validate:"required,size=11"`
	Image       *upload.File `form:"-"`
}

func (in ClientInput) Validate() error { return in.validate(DefaultImageMaxKB) }

func (in ClientInput) validate(maxKB int64) error {
	in = in.trimmed()
	return invalid(withImage(validate.Struct(in), in.Image, maxKB))
}

func (in ClientInput) trimmed() ClientInput {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientPhone = strings.TrimSpace(in.ClientPhone)
	return in
}

// categoryID is only meaningful after Validate succeeded.
func (in ClientInput) categoryID() uint {
	id, _ := strconv.ParseUint(strings.TrimSpace(in.CategoryID), 10, 64)
	return uint(id)
}

// ProductInput is the create/update form for a product. Price stays text so
// a malformed number is reported as a field error.
type ProductInput struct {
	Name  string       `form:"name"  validate:"required,max=255"`
	Price string       `form:"price" validate:"required,numeric"`
	Image *upload.File `form:"-"`
}

func (in ProductInput) Validate() error { return in.validate(DefaultImageMaxKB) }

func (in ProductInput) validate(maxKB int64) error {
	in = in.trimmed()
	errs := validate.Struct(in)
	if _, bad := errs["price"]; !bad {
		if msg := checkPrice(in.Price); msg != "" {
			errs = add(errs, "price", msg)
		}
	}
	return invalid(withImage(errs, in.Image, maxKB))
}

func (in ProductInput) trimmed() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)
	return in
}

func (in ProductInput) price() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(in.Price))
}

// Prices are stored as decimal(10,2).
const priceScale = 2

var priceLimit = decimal.New(1, 10-priceScale)

// checkPrice returns the message for a price the column cannot hold exactly,
// or "" when it fits.
func checkPrice(raw string) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return "The price field must be a number."
	}
	if !d.Equal(d.Round(priceScale)) {
		return fmt.Sprintf("The price field must have 0-%d decimal places.", priceScale)
	}
	if d.Abs().GreaterThanOrEqual(priceLimit) {
		return fmt.Sprintf("The price field must be less than %s.", priceLimit.String())
	}
	return ""
}

func withImage(errs validate.Errors, f *upload.File, maxKB int64) validate.Errors {
	if msg := upload.CheckImage("image", f, maxKB); msg != "" {
		errs = add(errs, "image", msg)
	}
	return errs
}

func add(errs validate.Errors, field, msg string) validate.Errors {
	if errs == nil {
		errs = validate.Errors{}
	}
	errs.Add(field, msg)
	return errs
}
