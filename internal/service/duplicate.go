package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/credkit/issuerd/internal/domain/model"
)

// DuplicateMatcher recognizes the issuance API's duplicate-issuance
// rejection: a 400 whose body matches a configured JMESPath expression.
// Whether a recognized duplicate counts as success is an explicit product
// toggle; the two historical implementations disagreed, so the choice is
// surfaced in configuration instead of being baked in.
type DuplicateMatcher struct {
	treatAsSuccess bool
	expr           string
	value          string
}

// NewDuplicateMatcher validates the expression and constructs a matcher.
// An empty expression disables matching entirely.
func NewDuplicateMatcher(treatAsSuccess bool, expr, value string) (*DuplicateMatcher, error) {
	expr = strings.TrimSpace(expr)
	if expr != "" {
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile duplicate-detection expression: %w", err)
		}
	}
	return &DuplicateMatcher{
		treatAsSuccess: treatAsSuccess,
		expr:           expr,
		value:          value,
	}, nil
}

// IsDuplicateSuccess reports whether the response is a duplicate-issuance
// rejection that policy says to record as success. Safe on a nil receiver.
func (m *DuplicateMatcher) IsDuplicateSuccess(resp model.AttemptResponse) bool {
	if m == nil || !m.treatAsSuccess {
		return false
	}
	return m.matches(resp)
}

func (m *DuplicateMatcher) matches(resp model.AttemptResponse) bool {
	if m.expr == "" || resp.StatusCode != http.StatusBadRequest || len(resp.Body) == 0 {
		return false
	}

	var body any
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return false
	}

	result, err := jmespath.Search(m.expr, body)
	if err != nil || result == nil {
		return false
	}
	return fmt.Sprint(result) == m.value
}
