package chat

import (
	"fmt"
	"strings"
)

// primerAcknowledgement is the fixed model-role turn written at session
// creation. It is a literal, never generated: priming must be deterministic
// and free of model-call failure.
const primerAcknowledgement = "Understood. I have read the updates and will answer technical questions against them."

// primerContent builds the user-role grounding turn carrying the snapshot.
func primerContent(snapshotText string) string {
	return "Use the following technical updates as background knowledge for this conversation.\n\n" + snapshotText
}

// buildReportPrompt assembles the one-shot impact-report prompt: a fixed
// instruction template with three labeled sections, followed by the full
// snapshot text. An optional focus question narrows the analysis.
func buildReportPrompt(snapshotText, question string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert engineer tracking a vendor's product and SDK surface.\n")
	sb.WriteString("Read the latest updates below (release feeds, blog posts, sample-code commits) and report what developers need to know.\n\n")
	sb.WriteString("Output format:\n")
	sb.WriteString("1. **Breaking Changes / Caution**: SDK behavior changes or deprecations that require code fixes.\n")
	sb.WriteString("2. **Cookbook / Examples**: newly added sample code and how to apply it.\n")
	sb.WriteString("3. **New Features**: overview of new capabilities.\n\n")

	if question != "" {
		sb.WriteString(fmt.Sprintf("Pay particular attention to: %s\n\n", question))
	}

	sb.WriteString("Data:\n")
	sb.WriteString(snapshotText)
	sb.WriteString("\n")

	return sb.String()
}
