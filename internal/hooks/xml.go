package hooks

import (
	"strings"

	"intentguard/internal/policy"
)

// escapeXML escapes the five characters spec §6 requires for every
// textual field of the injected intent_context document.
func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}

// buildIntentContext renders the handshake tool's injected result: an
// XML document summarizing the selected intent, per spec §6.
func buildIntentContext(intent *policy.Intent) string {
	var b strings.Builder
	b.WriteString("<intent_context>\n")
	b.WriteString("  <id>" + escapeXML(intent.ID) + "</id>")
	b.WriteString("<name>" + escapeXML(intent.Name) + "</name>")
	b.WriteString("<status>" + escapeXML(string(intent.Status)) + "</status>\n")

	b.WriteString("  <owned_scope>")
	for _, p := range intent.OwnedScope {
		b.WriteString("<path>" + escapeXML(p) + "</path>")
	}
	b.WriteString("</owned_scope>\n")

	b.WriteString("  <constraints>")
	for _, c := range intent.Constraints {
		b.WriteString("<rule>" + escapeXML(c) + "</rule>")
	}
	b.WriteString("</constraints>\n")

	b.WriteString("  <acceptance_criteria>")
	for _, a := range intent.AcceptanceCriteria {
		b.WriteString("<criterion>" + escapeXML(a) + "</criterion>")
	}
	b.WriteString("</acceptance_criteria>\n")

	b.WriteString("  <instructions>" + escapeXML(buildInstructions(intent)) + "</instructions>\n")
	b.WriteString("</intent_context>")
	return b.String()
}

func buildInstructions(intent *policy.Intent) string {
	return "You are now working under intent " + intent.ID + " (" + intent.Name + "). " +
		"Only modify files within the declared owned_scope; all other writes will be blocked."
}
