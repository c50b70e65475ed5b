package dialogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/faq"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

var btnMoreFAQ = chat.Button{Text: "❓ More FAQ", Data: Payload(ActionHelp, "")}

func (e *Engine) cmdHelp(t *turn, _ string) (reply, error) {
	entries, err := e.repos.FAQ.List(t.ctx)
	if err != nil {
		return reply{}, err
	}

	buttons := make([]chat.Button, 0, len(entries)+1)
	for _, f := range entries {
		buttons = append(buttons, chat.Button{Text: f.Title, Data: Payload(ActionFAQ, f.Key)})
	}
	buttons = append(buttons, btnMenu)

	return textReply("❓ **Help & FAQ**\n\nSelect a topic or type your question:", buttons...), nil
}

func (e *Engine) cmdFAQ(t *turn, key string) (reply, error) {
	f, err := e.repos.FAQ.FindByKey(t.ctx, faqKey(key))
	if errors.Is(err, domain.ErrNotFound) {
		return textReply("📖 **FAQ**\n\nNo FAQ entry found.", btnMoreFAQ, btnMenu), nil
	}
	if err != nil {
		return reply{}, err
	}
	return textReply(fmt.Sprintf("📖 **%s**\n\n%s", f.Title, f.Answer), btnMoreFAQ, btnMenu), nil
}

// faqKey aceita chaves antigas com espaço ("reset device")
func faqKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "-")
}

// searchFAQ responde perguntas do tipo "como faço..." a partir da base.
// Retorna false quando nada casa.
func (e *Engine) searchFAQ(t *turn, query string) (reply, bool, error) {
	entries, err := e.repos.FAQ.Search(t.ctx, query, 3)
	if err != nil {
		return reply{}, false, err
	}
	if len(entries) == 0 {
		return reply{}, false, nil
	}
	return textReply(faqAnswer(entries), btnMoreFAQ, btnMenu), true, nil
}

func faqAnswer(entries []*faq.Entry) string {
	var b strings.Builder
	b.WriteString("📖 **FAQ**")
	for _, f := range entries {
		fmt.Fprintf(&b, "\n\n**%s**\n%s", f.Question, f.Answer)
	}
	return b.String()
}
