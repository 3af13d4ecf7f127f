package memory

import (
	"strings"
	"testing"
)

func TestBuildExtractionPrompt(t *testing.T) {
	user := "Kendall is allergic to tree nuts"
	assistant := "Got it, I'll keep tree nuts out of every recipe."

	prompt := BuildExtractionPrompt(user, assistant)

	for _, c := range Categories {
		if !strings.Contains(prompt, string(c)) {
			t.Errorf("prompt missing category %q", c)
		}
	}
	if !strings.Contains(prompt, "User: "+user) {
		t.Error("prompt missing verbatim user utterance")
	}
	if !strings.Contains(prompt, "Assistant: "+assistant) {
		t.Error("prompt missing verbatim assistant reply")
	}
	if !strings.Contains(prompt, "Return [] if nothing") {
		t.Error("prompt missing empty-result instruction")
	}

	if again := BuildExtractionPrompt(user, assistant); again != prompt {
		t.Error("prompt is not deterministic for identical input")
	}
}
