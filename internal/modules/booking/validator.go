package booking

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"atvtours/internal/domain"
	pkgvalidator "atvtours/internal/pkg/validator"
)

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cardCVCRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

type contactFields struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,phone"`
}

// CanAdvance runs the validator for a single wizard step against the current
// selection. A nil map means the step is valid. Rules are step-scoped: a
// later step never re-checks an earlier step's fields.
func CanAdvance(step domain.WizardStep, sel domain.BookingSelection, now time.Time) map[string]string {
	switch step {
	case domain.StepDetails:
		return validateDetails(sel)
	case domain.StepContact:
		return pkgvalidator.Validate(contactFields{
			FirstName: sel.FirstName,
			LastName:  sel.LastName,
			Email:     sel.Email,
			Phone:     sel.Phone,
		})
	case domain.StepExtras:
		// Extras are optional; the step always validates.
		return nil
	case domain.StepPayment:
		return validatePayment(sel, now)
	default:
		return map[string]string{"step": "is not a known wizard step"}
	}
}

func validateDetails(sel domain.BookingSelection) map[string]string {
	fields := make(map[string]string)
	if sel.Date == "" {
		fields["date"] = "is required"
	} else if _, err := time.Parse("2006-01-02", sel.Date); err != nil {
		fields["date"] = "must be a date in YYYY-MM-DD form"
	}
	if sel.TimeSlot == "" {
		fields["time_slot"] = "is required"
	} else if _, err := time.Parse("15:04", sel.TimeSlot); err != nil {
		fields["time_slot"] = "must be a time in HH:MM form"
	}
	if sel.TourID == "" {
		fields["tour_id"] = "is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func validatePayment(sel domain.BookingSelection, now time.Time) map[string]string {
	fields := make(map[string]string)
	if !sel.TermsAccepted {
		fields["terms_accepted"] = "must be accepted before payment"
	}
	if sel.PaymentMethod == domain.MethodCard {
		if !CardNumberValid(sel.CardNumber) {
			fields["card_number"] = "must be 16 digits"
		}
		if !CardExpiryValid(sel.CardExpiry, now) {
			fields["card_expiry"] = "must be MM/YY and not in the past"
		}
		if !cardCVCRe.MatchString(sel.CardCVC) {
			fields["card_cvc"] = "must be 3 or 4 digits"
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// CardNumberValid checks for 16 digits after stripping spaces.
func CardNumberValid(number string) bool {
	return cardNumberRe.MatchString(strings.ReplaceAll(number, " ", ""))
}

// CardExpiryValid checks MM/YY form denoting a month not strictly before the
// current month.
func CardExpiryValid(expiry string, now time.Time) bool {
	m := cardExpiryRe.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000

	if year != now.Year() {
		return year > now.Year()
	}
	return time.Month(month) >= now.Month()
}
