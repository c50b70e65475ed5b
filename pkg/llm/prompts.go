package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

const classifyPrompt = `Classify this POS management chatbot message. Reply ONLY with JSON like {"category":"DEVICE"}.

CATEGORIES:
- DEVICE: questions about POS devices, their status, battery or location
- ADD_DEVICE: the user wants to add or register a new device
- DISABLE_DEVICE: the user wants to disable, deactivate or block a device
- MERCHANT: questions about merchants or stores
- ADD_MERCHANT: the user wants to create or onboard a merchant
- REPORT: transactions, settlements, volumes, regions, analytics
- ALERT: alerts, warnings, low battery, offline notifications
- HELP: how-to questions, troubleshooting, FAQ
- GENERAL: greetings, small talk, anything else

Examples:
"Is POS-4421 online?" -> {"category":"DEVICE"}
"Register new device" -> {"category":"ADD_DEVICE"}
"Deactivate a device" -> {"category":"DISABLE_DEVICE"}
"Show merchants" -> {"category":"MERCHANT"}
"Onboard a merchant" -> {"category":"ADD_MERCHANT"}
"Compare transaction volumes" -> {"category":"REPORT"}
"Any alerts today?" -> {"category":"ALERT"}
"How do I reset a device?" -> {"category":"HELP"}
"Thanks" -> {"category":"GENERAL"}

Message: "%s"
JSON:`

const synthesizeSystem = `You are NexPOS AI, a POS management assistant. Be concise (<100 words). Use markdown bold and bullets.

DATA:
%s

Rules: Answer from data above. For actions say "use the menu buttons". Be helpful and brief.`

// MinAnswerLength é o tamanho mínimo de uma resposta sintetizada aceitável
const MinAnswerLength = 16

var (
	jsonObject = regexp.MustCompile(`\{[^{}]+\}`)
	bareWord   = regexp.MustCompile(`^[A-Za-z_ ]+$`)
)

// parseClassification extrai a categoria da resposta do modelo.
// Retorna false quando a resposta não tem formato reconhecível.
func parseClassification(raw string) (Category, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if m := jsonObject.FindString(raw); m != "" {
		var out struct {
			Category string `json:"category"`
		}
		if err := json.Unmarshal([]byte(m), &out); err != nil || out.Category == "" {
			return "", false
		}
		return ParseCategory(out.Category), true
	}

	word := strings.Trim(raw, ".\"'` \n")
	if bareWord.MatchString(word) && len(strings.Fields(word)) <= 2 {
		return ParseCategory(word), true
	}

	return "", false
}

// degenerate informa se a resposta sintetizada é curta demais ou um aviso de erro
func degenerate(answer string) bool {
	answer = strings.TrimSpace(answer)
	if len([]rune(answer)) < MinAnswerLength {
		return true
	}
	return strings.HasPrefix(answer, "⚠️")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
