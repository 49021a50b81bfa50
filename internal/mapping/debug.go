package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// saveAISuggestionsToFile writes the raw model response and the accepted
// mappings to a timestamped debug file under logs/ai_debug.
func saveAISuggestionsToFile(responseText string, mappings []AIMapping) {
	debugDir := "logs/ai_debug"
	os.MkdirAll(debugDir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	debugFile := filepath.Join(debugDir, fmt.Sprintf("ai_mapping_%s.txt", timestamp))

	file, err := os.Create(debugFile)
	if err != nil {
		return
	}
	defer file.Close()

	fmt.Fprintf(file, "AI Mapping Debug - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "===========================================\n\n")

	fmt.Fprintf(file, "RAW RESPONSE:\n%s\n", responseText)

	fmt.Fprintf(file, "\nACCEPTED MAPPINGS (%d):\n", len(mappings))
	for i, mapping := range mappings {
		fmt.Fprintf(file, "%d. '%s' → '%s' (%.2f confidence)\n",
			i+1, mapping.DerivedColumn, mapping.SourceColumn, mapping.Confidence)
	}
	if len(mappings) == 0 {
		fmt.Fprintf(file, "No mappings generated (all were NO_MATCH or low confidence)\n")
	}

	fmt.Fprintf(file, "\n===========================================\n")
}
