package mcp

import (
	"fmt"
	"strings"

	"github.com/paperdex/paperdex/internal/search"
)

// FormatSearchResults formats search results as markdown.
func FormatSearchResults(query string, results []search.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for \"%s\"", query)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search Results for \"%s\"\n\n", query))
	sb.WriteString(fmt.Sprintf("Found %d result", len(results)))
	if len(results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for i, r := range results {
		formatResult(&sb, i+1, r)
	}

	return sb.String()
}

// formatResult formats a single search result.
func formatResult(sb *strings.Builder, num int, r search.Result) {
	title := r.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(sb, "### %d. %s (score: %d)\n", num, title, r.Score)

	var meta []string
	if r.FirstCreator != "" {
		meta = append(meta, r.FirstCreator)
	}
	if r.Year != "" {
		meta = append(meta, r.Year)
	}
	if r.CitationKey != "" {
		meta = append(meta, fmt.Sprintf("`%s`", r.CitationKey))
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, " · "))
		sb.WriteString("\n")
	}

	for _, a := range r.Attachments {
		fmt.Fprintf(sb, "- 📄 %s\n", a.Title)
	}

	sb.WriteString("\n")
}

// FormatCollectionTree formats the collection tree as nested markdown lists.
func FormatCollectionTree(roots []*search.FolderNode) string {
	if len(roots) == 0 {
		return "The library is empty."
	}

	var sb strings.Builder
	sb.WriteString("## Library Collections\n\n")
	for _, node := range roots {
		formatNode(&sb, node, 0)
	}
	return sb.String()
}

func formatNode(sb *strings.Builder, node *search.FolderNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s- **%s**\n", indent, node.Name)
	for _, doc := range node.Documents {
		title := doc.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(sb, "%s  - %s\n", indent, title)
	}
	for _, child := range node.Folders {
		formatNode(sb, child, depth+1)
	}
}
