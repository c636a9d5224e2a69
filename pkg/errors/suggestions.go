package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryDiskSpace:
		return g.generateDiskSpaceSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryMalformed:
		return g.generateMalformedSuggestions(affectedPath)
	case CategoryTruncated:
		return g.generateTruncatedSuggestions(affectedPath)
	case CategoryTooLarge:
		return g.generateTooLargeSuggestions(affectedPath)
	case CategoryRemote:
		return g.generateRemoteSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateDiskSpaceSuggestions(path string) []string {
	suggestions := []string{
		"Free up space on the device holding the output listing",
		"Check available space with 'df -h'",
	}

	if path != "" {
		suggestions = append(suggestions, "Write the listing somewhere other than "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateMalformedSuggestions(path string) []string {
	suggestions := []string{
		"Make sure the input is an LTFS index (it starts with an <?xml ... encoding=\"UTF-8\"?> declaration)",
		"Re-export the index from the tape; the copy may be damaged",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect the start of the file with 'head -c 512 %s'", path))
	}

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "Ensure all parent directories exist for "+path)
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you can read the index and write the listing",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -la' on the affected path")
	}

	return suggestions
}

func (g *suggestionGenerator) generateRemoteSuggestions(_ string) []string {
	return []string{
		"Check that the SFTP host is reachable and the port is correct",
		"Make sure your key is loaded in ssh-agent or present in ~/.ssh",
		"Confirm the host is listed in ~/.ssh/known_hosts",
	}
}

func (g *suggestionGenerator) generateTooLargeSuggestions(_ string) []string {
	return []string{
		"Run the conversion on a machine with more memory",
		"Split the tape's index by exporting a smaller volume",
	}
}

func (g *suggestionGenerator) generateTruncatedSuggestions(path string) []string {
	suggestions := []string{
		"The index ends early; the listing only covers entries before the cut",
		"Re-export the index from the tape and convert it again",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check the end of the file with 'tail -c 512 %s'", path))
	}

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run again with --log-level debug for a trace of the conversion",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
