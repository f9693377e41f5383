package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skillbridge/skillbridge-backend/internal/providers/llm"
)

// Canonical language codes. The long-form request aliases ("hindi",
// "english") normalize onto these.
const (
	LangHindi   = "hi"
	LangEnglish = "en"
)

// NormalizeLanguage maps request-level language values onto the canonical
// codes. Unknown values default to Hindi, matching the API default.
func NormalizeLanguage(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "en", "english", "en-us", "en-in":
		return LangEnglish
	default:
		return LangHindi
	}
}

// Generator produces a session summary from a transcript. With a configured
// backend it renders the structured prompt and calls it; without one, or
// when the backend errors, it falls through to a deterministic templated
// summary. Generate never returns an error: the caller always gets
// non-empty text plus a flag marking degraded output.
type Generator struct {
	backend llm.Provider // nil means degraded-only operation
	log     *logrus.Logger
}

func New(backend llm.Provider, log *logrus.Logger) *Generator {
	if log == nil {
		log = logrus.New()
	}
	return &Generator{backend: backend, log: log}
}

// Generate returns the summary text and whether it came from the degraded
// templated path.
func (g *Generator) Generate(ctx context.Context, transcript, language string) (string, bool) {
	language = NormalizeLanguage(language)

	if g.backend != nil {
		text, err := g.backend.Complete(ctx, Prompt(transcript, language))
		if err != nil {
			g.log.WithError(err).Warn("summary backend failed, using templated summary")
		} else if strings.TrimSpace(text) != "" {
			return text, false
		}
	}

	return templated(transcript, language), true
}

// Prompt renders the structured summary prompt in the requested language.
func Prompt(transcript, language string) string {
	if NormalizeLanguage(language) == LangHindi {
		return fmt.Sprintf(`आपको एक शिक्षण सत्र का ट्रांसक्रिप्ट दिया गया है। कृपया इसका विस्तृत सारांश हिंदी में तैयार करें।

ट्रांसक्रिप्ट:
%s

कृपया निम्नलिखित प्रारूप में सारांश दें:

**सत्र का सारांश**

**मुख्य विषय:**
**सीखने के परिणाम:**
**महत्वपूर्ण बातें:**
**आगे की कार्य योजना:**
**प्रश्न और उत्तर:**

सारांश 200-300 शब्दों में दें और स्पष्ट हेडिंग्स का उपयोग करें।`, transcript)
	}

	return fmt.Sprintf(`You are given a transcript of a learning session. Please create a detailed summary in English.

Transcript:
%s

Please provide the summary in the following format:

**Session Summary**

**Key Topics Discussed:**
**Learning Outcomes:**
**Important Highlights:**
**Action Items:**
**Q&A Highlights:**

Keep the summary to 200-300 words with clear headings.`, transcript)
}

// templated is the degraded path: local string formatting only, so it cannot
// fail. Output is deterministic for a given transcript.
func templated(transcript, language string) string {
	words := len(strings.Fields(transcript))

	if NormalizeLanguage(language) == LangHindi {
		return fmt.Sprintf(`**सत्र का सारांश**

**मुख्य विषय:**
- इस सत्र में %d शब्दों की चर्चा हुई

**सीखने के परिणाम:**
- सत्र के मुख्य बिंदु ट्रांसक्रिप्ट में उपलब्ध हैं

**महत्वपूर्ण बातें:**
- पूरा विवरण सहेजे गए ट्रांसक्रिप्ट में देखें

**आगे की कार्य योजना:**
- सत्र में चर्चित अभ्यास दोहराएं

**प्रश्न और उत्तर:**
- प्रश्नोत्तर ट्रांसक्रिप्ट में दर्ज हैं

*यह एक स्वचालित सारांश है। Real-time AI summary के लिए AI backend configure करें।*`, words)
	}

	return fmt.Sprintf(`**Session Summary**

**Key Topics Discussed:**
- Covered %d words of conversation

**Learning Outcomes:**
- Key points of the session are available in the transcript

**Important Highlights:**
- See the saved transcript for full detail

**Action Items:**
- Revisit the exercises discussed during the session

**Q&A Highlights:**
- Questions and answers are recorded in the transcript

*This is an automatically templated summary. Configure an AI backend for real summaries.*`, words)
}
