package browser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// moreButtonScript returns an expression that finds the first interactive element whose
// text contains one of phrases, scrolls it into view and, when click is set, clicks it.
// The expression evaluates to true when an element was found.
func moreButtonScript(phrases []string, click bool) string {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		lowered = append(lowered, strings.ToLower(p))
	}
	encoded, _ := json.Marshal(lowered)

	action := ""
	if click {
		action = "el.click();"
	}

	return fmt.Sprintf(`(() => {
	const phrases = %s;
	const candidates = Array.from(document.querySelectorAll('button, a, [role="button"]'));
	const el = candidates.find(node => {
		const text = (node.textContent || '').trim().toLowerCase();
		return phrases.some(p => text.includes(p));
	});
	if (!el) return false;
	el.scrollIntoView({behavior: 'instant', block: 'center'});
	%s
	return true;
})()`, encoded, action)
}

const (
	scrollHeightScript   = `document.body ? document.body.scrollHeight : 0`
	scrollToBottomScript = `window.scrollTo(0, document.body ? document.body.scrollHeight : 0)`
	readyStateScript     = `document.readyState === "complete"`
)
