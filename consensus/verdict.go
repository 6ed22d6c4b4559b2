package consensus

import (
	"strings"
)

// Verdict is the parsed outcome of a validation response.
type Verdict struct {
	Pass   bool
	Issues []string
}

// ParseValidationVerdict reads the VALIDATION_RESULT / ISSUES_FOUND response
// format. A response without a recognizable result line counts as a failed
// validation so a malformed audit can never wave a bad table through.
func ParseValidationVerdict(text string) Verdict {
	verdict := Verdict{}
	resultSeen := false
	inIssues := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(line, "VALIDATION_RESULT:"); ok {
			resultSeen = true
			verdict.Pass = strings.EqualFold(strings.TrimSpace(rest), "PASS")
			continue
		}

		if strings.HasPrefix(line, "ISSUES_FOUND:") {
			inIssues = true
			continue
		}

		if inIssues && (strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")) {
			issue := strings.TrimSpace(strings.TrimLeft(line, "-* "))
			if issue != "" {
				verdict.Issues = append(verdict.Issues, issue)
			}
		}
	}

	if !resultSeen {
		return Verdict{Pass: false, Issues: []string{"unrecognized validation response"}}
	}
	if !verdict.Pass && len(verdict.Issues) == 0 {
		verdict.Issues = []string{"validation failed without listing issues"}
	}
	return verdict
}
