package adjustment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Violation codes reported by the validator
const (
	CodeMissingBranch   = "MISSING_BRANCH"
	CodeMissingType     = "MISSING_TYPE"
	CodeMissingSalesRep = "MISSING_SALES_REP"
	CodeMissingLines    = "MISSING_LINES"
	CodeInvalidLine     = "INVALID_LINE"
	CodeMissingRate     = "MISSING_RATE"
)

// Violation is a single validation failure. Line is the zero-based index of
// the offending line, or -1 for document-level violations.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// ValidationResult collects every violation of a submission so the caller
// can present all problems at once
type ValidationResult struct {
	Violations []Violation `json:"violations"`
}

// Valid returns true when no violation was recorded
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// AsError returns the result as an error, or nil when valid
func (r ValidationResult) AsError() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Result: r}
}

// ValidationError wraps a failed validation result as an error
type ValidationError struct {
	Result ValidationResult
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Result.Violations))
	for _, v := range e.Result.Violations {
		msgs = append(msgs, v.Message)
	}
	return "adjustment validation failed: " + strings.Join(msgs, "; ")
}

func (r *ValidationResult) add(code, message string, line int) {
	r.Violations = append(r.Violations, Violation{Code: code, Message: message, Line: line})
}

// Validate checks a complete adjustment draft for structural and business
// completeness before submission. Every rule is evaluated independently and
// all violations are collected; nothing short-circuits. A submission is
// rejected as a whole when any rule fails.
func Validate(adj *Adjustment, scope ActorScope) ValidationResult {
	var result ValidationResult

	if adj.BranchID == uuid.Nil {
		result.add(CodeMissingBranch, "Branch is required", -1)
	}

	if !adj.Type.IsValid() {
		result.add(CodeMissingType, "Adjustment type is required", -1)
	}

	// salesRep scopes have the rep auto-supplied from their own identity
	if scope.IsUnscoped() && adj.SalesRepID == uuid.Nil {
		result.add(CodeMissingSalesRep, "Sales representative is required", -1)
	}

	if len(adj.Lines) == 0 {
		result.add(CodeMissingLines, "At least one line is required", -1)
	}

	for idx := range adj.Lines {
		line := &adj.Lines[idx]

		if line.ItemID == uuid.Nil || (!line.PrimaryQty.IsPositive() && !line.BaseQty.IsPositive()) {
			result.add(CodeInvalidLine, fmt.Sprintf("Line %d needs an item and a positive quantity", idx+1), idx)
			continue
		}

		if !adj.Type.IsValid() {
			continue
		}

		rateWord := "costs"
		if adj.Type.IsSalesType() {
			rateWord = "prices"
		}
		primaryRate := line.primaryRate(adj.Type)
		baseRate := line.baseRate(adj.Type)
		if line.PrimaryQty.IsPositive() && (primaryRate == nil || !primaryRate.IsPositive()) {
			result.add(CodeMissingRate, fmt.Sprintf("Line %d has a primary quantity but no positive primary %s", idx+1, rateWord), idx)
		}
		if line.BaseQty.IsPositive() && (baseRate == nil || !baseRate.IsPositive()) {
			result.add(CodeMissingRate, fmt.Sprintf("Line %d has a base quantity but no positive base %s", idx+1, rateWord), idx)
		}
	}

	return result
}
