package stay

import (
	"errors"
	"strings"
	"time"
)

type Rule string

const (
	RuleDateFormat Rule = "dateFormat"
	RuleNotInPast  Rule = "notInPast"
	RuleDateRange  Rule = "dateRange"
	RuleNoConflict Rule = "noConflict"
)

type Field string

const (
	FieldStartDate Field = "startDate"
	FieldEndDate   Field = "endDate"
)

const (
	MessageDateFormat   = "Date must be in dd/mm/yyyy format"
	MessageDateNotExist = "Date does not exist"
	MessageNotInPast    = "Date cannot be in the past"
	MessageDateRange    = "Start date must be earlier than end date"
	MessageConflict     = "Selected dates conflict with an existing booking"
)

// Input is what staff typed into the date fields plus the snapshot of the selected cabin.
type Input struct {
	StartDate string
	EndDate   string
	Existing  []ExistingBooking
}

// Outcome is the result of one rule on one field. Reason is set only when it failed.
type Outcome struct {
	Rule   Rule   `json:"rule"`
	Field  Field  `json:"field"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// Validator checks one rule for one field and returns the failure reason, or "" to pass.
type Validator struct {
	Rule  Rule
	Field Field
	Check func(in Input, now time.Time) string
}

// Validators returns the rule table in the order its failures are shown per field.
func Validators() []Validator {
	return []Validator{
		{Rule: RuleDateFormat, Field: FieldStartDate, Check: func(in Input, _ time.Time) string { return checkFormat(in.StartDate) }},
		{Rule: RuleNotInPast, Field: FieldStartDate, Check: checkNotInPast},
		{Rule: RuleNoConflict, Field: FieldStartDate, Check: checkConflict},
		{Rule: RuleDateFormat, Field: FieldEndDate, Check: func(in Input, _ time.Time) string { return checkFormat(in.EndDate) }},
		{Rule: RuleDateRange, Field: FieldEndDate, Check: checkRange},
		{Rule: RuleNoConflict, Field: FieldEndDate, Check: checkConflict},
	}
}

// Validate runs every rule; a failing rule never stops the others.
func Validate(in Input, now time.Time) Report {
	validators := Validators()
	outcomes := make([]Outcome, 0, len(validators))

	for _, v := range validators {
		reason := v.Check(in, now)

		outcomes = append(outcomes, Outcome{
			Rule:   v.Rule,
			Field:  v.Field,
			Passed: reason == "",
			Reason: reason,
		})
	}

	return Report{Outcomes: outcomes}
}

func checkFormat(text string) string {
	_, err := ParseDate(text)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDateNotExist):
		return MessageDateNotExist
	default:
		return MessageDateFormat
	}
}

func checkNotInPast(in Input, now time.Time) string {
	start, err := ParseDate(in.StartDate)
	if err != nil {
		return ""
	}

	if start.Before(Today(now)) {
		return MessageNotInPast
	}

	return ""
}

func checkRange(in Input, _ time.Time) string {
	start, err := ParseDate(in.StartDate)
	if err != nil {
		return ""
	}

	end, err := ParseDate(in.EndDate)
	if err != nil {
		return ""
	}

	if !start.Before(end) {
		return MessageDateRange
	}

	return ""
}

func checkConflict(in Input, _ time.Time) string {
	if CheckConflict(in.StartDate, in.EndDate, in.Existing) {
		return MessageConflict
	}

	return ""
}

type Report struct {
	Outcomes []Outcome `json:"outcomes"`
}

func (r Report) Valid() bool {
	for _, outcome := range r.Outcomes {
		if !outcome.Passed {
			return false
		}
	}

	return true
}

func (r Report) Failures() []Outcome {
	failures := []Outcome{}

	for _, outcome := range r.Outcomes {
		if !outcome.Passed {
			failures = append(failures, outcome)
		}
	}

	return failures
}

// Errors maps each failing field to its first failure reason.
func (r Report) Errors() map[string]string {
	errs := map[string]string{}

	for _, outcome := range r.Failures() {
		if _, seen := errs[string(outcome.Field)]; !seen {
			errs[string(outcome.Field)] = outcome.Reason
		}
	}

	return errs
}

func (r Report) String() string {
	parts := []string{}

	for _, outcome := range r.Failures() {
		parts = append(parts, string(outcome.Field)+": "+outcome.Reason)
	}

	return strings.Join(parts, "; ")
}
