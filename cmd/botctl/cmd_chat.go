package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/repository"
	"github.com/hugohenrick/nexpos-assistant/internal/config"
	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/capability"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

const chatHelp = `Type a message, or:
  /button <data>                 press a button (e.g. /button devices)
  /form <form_id> key=value ...  submit a form
  /quit                          leave`

func newChatCmd() *cobra.Command {
	var (
		role      string
		sessionID string
		noModel   bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Conversa com o assistente localmente, sem servidor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := user.ParseRole(role)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if noModel {
				cfg.Model.Provider = llm.ProviderNone
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			engine, err := newLocalEngine(ctx, cfg)
			if err != nil {
				return err
			}
			if sessionID == "" {
				sessionID = uuid.New().String()
			}

			caller := dialogue.Caller{UserID: "cli", TenantID: "tenant-001", Name: "CLI " + r.String(), Role: r}
			return repl(ctx, engine, sessionID, caller, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&role, "role", user.RoleViewer.String(), "papel do usuário da conversa")
	f.StringVar(&sessionID, "session", "", "ID da sessão (padrão: novo UUID)")
	f.BoolVar(&noModel, "no-model", false, "ignora MODEL_PROVIDER e usa apenas respostas fixas")
	return cmd
}

// newLocalEngine monta o motor sobre o repositório em memória
func newLocalEngine(ctx context.Context, cfg *config.Config) (*dialogue.Engine, error) {
	seed, err := repository.DefaultSeed()
	if err != nil {
		return nil, err
	}
	store := repository.NewMemoryStore(seed)

	registry, err := capability.DefaultRegistry()
	if err != nil {
		return nil, err
	}

	log := logger.NewNop()
	opts := []dialogue.Option{dialogue.WithSpecificityWords(cfg.SpecificityWords)}
	assistant, err := llm.New(ctx, cfg.Model, log)
	if err != nil {
		return nil, err
	}
	if assistant != nil {
		opts = append(opts,
			dialogue.WithClassifier(assistant),
			dialogue.WithSynthesizer(assistant),
			dialogue.WithModelName(assistant.Model()),
		)
	}

	repos := dialogue.Repositories{
		Devices:   store.Devices,
		Merchants: store.Merchants,
		Alerts:    store.Alerts,
		Reports:   store.Reports,
		FAQ:       store.FAQ,
		Activity:  store.Activity,
		Tenants:   store.Tenants,
	}
	return dialogue.NewEngine(registry, repos, session.NewStore(0), opts...)
}

// repl lê uma linha por turno até EOF ou /quit
func repl(ctx context.Context, engine *dialogue.Engine, sessionID string, caller dialogue.Caller, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, chatHelp)
	render(out, engine.Process(ctx, sessionID, caller, dialogue.Event{Kind: dialogue.EventEmpty}))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			return nil
		}

		ev, err := parseLine(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		render(out, engine.Process(ctx, sessionID, caller, ev))
	}
}

func parseLine(line string) (dialogue.Event, error) {
	switch {
	case strings.HasPrefix(line, "/button "):
		return dialogue.ButtonEvent(strings.TrimSpace(strings.TrimPrefix(line, "/button "))), nil
	case strings.HasPrefix(line, "/form "):
		parts := strings.Fields(strings.TrimPrefix(line, "/form "))
		if len(parts) == 0 {
			return dialogue.Event{}, fmt.Errorf("usage: /form <form_id> key=value ...")
		}
		fields := make(map[string]string, len(parts)-1)
		for _, kv := range parts[1:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return dialogue.Event{}, fmt.Errorf("invalid field %q, expected key=value", kv)
			}
			fields[k] = v
		}
		return dialogue.FormEvent(parts[0], fields), nil
	}
	return dialogue.TextEvent(line), nil
}

func render(out io.Writer, msgs []chat.Message) {
	for _, m := range msgs {
		switch v := m.(type) {
		case *chat.Text:
			fmt.Fprintln(out, v.Content)
			renderButtons(out, v.Buttons)
		case *chat.Cards:
			fmt.Fprintln(out, v.Content)
			for _, c := range v.Cards {
				fmt.Fprintf(out, "  ▸ %s", c.Title)
				if c.Subtitle != "" {
					fmt.Fprintf(out, " (%s)", c.Subtitle)
				}
				fmt.Fprintln(out)
				for _, f := range c.Fields {
					fmt.Fprintf(out, "      %s\n", f)
				}
				renderButtons(out, c.Buttons)
			}
			renderButtons(out, v.Buttons)
		case *chat.Form:
			fmt.Fprintf(out, "📝 %s [form %s]\n", v.Title, v.FormID)
			if v.Notice != "" {
				fmt.Fprintln(out, v.Notice)
			}
			for _, f := range v.Fields {
				req := ""
				if f.Required {
					req = " *"
				}
				fmt.Fprintf(out, "  %s (%s)%s\n", f.Name, f.Label, req)
			}
			renderButtons(out, v.Buttons)
		case *chat.Error:
			fmt.Fprintf(out, "error %d: %s\n", v.Code, v.Message)
		}
	}
}

func renderButtons(out io.Writer, buttons []chat.Button) {
	if len(buttons) == 0 {
		return
	}
	labels := make([]string, 0, len(buttons))
	for _, b := range buttons {
		labels = append(labels, fmt.Sprintf("[%s → %s]", b.Text, b.Data))
	}
	fmt.Fprintf(out, "    %s\n", strings.Join(labels, " "))
}
