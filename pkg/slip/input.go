package slip

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Input is the operator-submitted field set for create and update.
// Approver is ignored on create.
type Input struct {
	EntryDate      string  `json:"entry_date"      validate:"omitempty,datetime=2006-01-02"`
	EntryTime      string  `json:"entry_time"      validate:"omitempty,datetime=15:04"`
	ExitDate       string  `json:"exit_date"       validate:"omitempty,datetime=2006-01-02"`
	ExitTime       string  `json:"exit_time"       validate:"omitempty,datetime=15:04"`
	DocumentNumber string  `json:"document_number"`
	Plate          string  `json:"plate"           validate:"required"`
	Driver         string  `json:"driver"          validate:"required"`
	Goods          string  `json:"goods"           validate:"required"`
	OrderRef       string  `json:"order_ref"`
	Transporter    string  `json:"transporter"`
	Gross          float64 `json:"gross"           validate:"gte=0"`
	Tare           float64 `json:"tare"            validate:"gte=0"`
	Weigher        string  `json:"weigher"`
	Receiver       string  `json:"receiver"`
	Approver       string  `json:"approver"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims text fields, rewrites times as HH:MM and fills empty
// dates/times from now, the way the entry form pre-fills them.
func (in Input) Normalize(now time.Time) Input {
	trim := func(p *string) { *p = strings.TrimSpace(*p) }
	for _, p := range []*string{
		&in.EntryDate, &in.EntryTime, &in.ExitDate, &in.ExitTime, &in.DocumentNumber,
		&in.Plate, &in.Driver, &in.Goods, &in.OrderRef, &in.Transporter,
		&in.Weigher, &in.Receiver, &in.Approver,
	} {
		trim(p)
	}
	if in.EntryDate == "" {
		in.EntryDate = now.Format(DateLayout)
	}
	if in.ExitDate == "" {
		in.ExitDate = now.Format(DateLayout)
	}
	if in.EntryTime == "" {
		in.EntryTime = now.Format(TimeLayout)
	}
	if in.ExitTime == "" {
		in.ExitTime = now.Format(TimeLayout)
	}
	in.EntryTime = normalizeTime(in.EntryTime)
	in.ExitTime = normalizeTime(in.ExitTime)
	return in
}

// Validate checks mandatory fields, weight ranges and gross > tare.
// The returned error is always a *ValidationError.
func (in Input) Validate() error {
	var violations []string
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ValidationError{Violations: []string{err.Error()}}
		}
		for _, fe := range verrs {
			violations = append(violations, describe(fe))
		}
	}
	if math.IsNaN(in.Gross) || math.IsInf(in.Gross, 0) || math.IsNaN(in.Tare) || math.IsInf(in.Tare, 0) {
		violations = append(violations, "gross and tare must be finite numbers")
	} else if in.Gross <= in.Tare {
		violations = append(violations, "gross must be greater than tare")
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// Apply copies the mutable fields of in onto s and recomputes the net weight.
func (in Input) Apply(s *Slip) {
	s.EntryDate = in.EntryDate
	s.EntryTime = in.EntryTime
	s.ExitDate = in.ExitDate
	s.ExitTime = in.ExitTime
	s.DocumentNumber = in.DocumentNumber
	s.Plate = in.Plate
	s.Driver = in.Driver
	s.Goods = in.Goods
	s.OrderRef = in.OrderRef
	s.Transporter = in.Transporter
	s.Gross = in.Gross
	s.Tare = in.Tare
	s.Net = ComputeNet(in.Gross, in.Tare)
	s.Weigher = in.Weigher
	s.Receiver = in.Receiver
	s.Approver = in.Approver
}

// parseClock accepts H:MM, HH:MM and HH:MM:SS.
func parseClock(t string) (time.Time, error) {
	if c, err := time.Parse("15:04:05", t); err == nil {
		return c, nil
	}
	return time.Parse(TimeLayout, t)
}

// normalizeTime rewrites a parsable time as zero-padded HH:MM. Anything else
// is returned unchanged for Validate to reject.
func normalizeTime(t string) string {
	c, err := parseClock(t)
	if err != nil {
		return t
	}
	return c.Format(TimeLayout)
}
