package extractor

import "strings"

const fence = "```"

// fencePayload locates the candidate JSON payload inside a raw model
// response. The span runs from the first triple-backtick marker to the last
// one: with multiple fenced blocks this captures the outermost span, a known
// heuristic carried over from the observed model behavior. A response with no
// fencing at all is returned whole as a best-effort candidate. A response
// with a single marker yields whatever sits after it up to nothing, which the
// JSON decode then rejects.
func fencePayload(raw string) string {
	start := strings.Index(raw, fence)
	if start == -1 {
		return strings.TrimSpace(raw)
	}

	payload := ""
	if end := strings.LastIndex(raw, fence); end > start {
		payload = raw[start+len(fence) : end]
	}
	payload = strings.TrimSpace(payload)

	// Models often tag the opening fence with a language hint. A bare "json"
	// token is never valid payload, so stripping it cannot lose data.
	if rest, ok := strings.CutPrefix(payload, "json"); ok {
		if rest == "" || rest[0] == '\n' || rest[0] == '\r' || rest[0] == '{' || rest[0] == '[' {
			payload = strings.TrimSpace(rest)
		}
	}

	return payload
}
