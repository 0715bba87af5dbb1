package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Ruscigno/argus/model"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
)

// ParseReport parses a model reply into the report schema. The reply is
// tried as-is, then with a surrounding code fence stripped, then as the
// widest brace-delimited window. Anything that still fails to parse is
// an error; schema violations beyond JSON syntax are not repaired.
func ParseReport(raw string) (*model.AnalysisReport, error) {
	raw = strings.TrimSpace(raw)

	candidates := []string{raw, stripFence(raw)}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}

	var lastErr error
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		var report model.AnalysisReport
		if err := json.Unmarshal([]byte(candidate), &report); err != nil {
			lastErr = err
			continue
		}
		return &report, nil
	}
	return nil, fmt.Errorf("model reply is not valid report JSON: %v", lastErr)
}

func stripFence(raw string) string {
	stripped := fenceOpenRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(fenceCloseRe.ReplaceAllString(stripped, ""))
}
