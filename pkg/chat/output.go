package chat

// Kind identifica o tipo de uma mensagem de saída
type Kind string

const (
	KindText   Kind = "text"
	KindCards  Kind = "cards"
	KindForm   Kind = "form"
	KindTyping Kind = "typing"
	KindError  Kind = "error"
)

// Confidence indica como a rota foi decidida
const (
	ConfidenceDeterministic = "deterministic"
	ConfidenceModel         = "model"
)

// Message é uma mensagem de saída do motor de diálogo. A serialização para o
// cliente acontece só na camada de transporte.
type Message interface {
	Kind() Kind
}

// Button é uma ação estruturada oferecida ao usuário
type Button struct {
	Text string
	Data string
}

// Metadata acompanha toda mensagem principal
type Metadata struct {
	ToolUsed    string
	ToolArgs    map[string]string
	RBACBlocked bool
	Confidence  string
	LatencyMS   int64
	Model       string
	UserRole    string
	OperationID string
}

// Text é uma resposta em markdown com botões opcionais
type Text struct {
	Content  string
	Buttons  []Button
	Metadata *Metadata
}

// Card é um item de uma lista de cartões
type Card struct {
	Title    string
	Subtitle string
	Fields   []string
	Buttons  []Button
}

// Cards é uma lista de cartões com um título
type Cards struct {
	Content  string
	Cards    []Card
	Buttons  []Button
	Metadata *Metadata
}

// Option é uma escolha de um campo select
type Option struct {
	Value string
	Label string
}

// FormField descreve um campo de formulário
type FormField struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Required    bool
	Options     []Option
}

// Form pede ao usuário os valores de uma ação de escrita.
// Notice carrega o aviso de validação quando o formulário é reapresentado.
type Form struct {
	FormID      string
	Title       string
	Notice      string
	Fields      []FormField
	SubmitLabel string
	Buttons     []Button
	Metadata    *Metadata
}

// Typing liga ou desliga o indicador de digitação
type Typing struct {
	Active bool
}

// Error informa falhas de transporte ou autenticação
type Error struct {
	Code    int
	Message string
}

func (*Text) Kind() Kind   { return KindText }
func (*Cards) Kind() Kind  { return KindCards }
func (*Form) Kind() Kind   { return KindForm }
func (*Typing) Kind() Kind { return KindTyping }
func (*Error) Kind() Kind  { return KindError }

// MetadataOf retorna o envelope de metadados de uma mensagem principal
func MetadataOf(m Message) *Metadata {
	switch v := m.(type) {
	case *Text:
		return v.Metadata
	case *Cards:
		return v.Metadata
	case *Form:
		return v.Metadata
	}
	return nil
}

// SetMetadata grava o envelope numa mensagem principal. Retorna false para os demais tipos.
func SetMetadata(m Message, md *Metadata) bool {
	switch v := m.(type) {
	case *Text:
		v.Metadata = md
	case *Cards:
		v.Metadata = md
	case *Form:
		v.Metadata = md
	default:
		return false
	}
	return true
}

// IsPrimary informa se a mensagem carrega conteúdo (texto, cartões ou formulário)
func IsPrimary(m Message) bool {
	switch m.(type) {
	case *Text, *Cards, *Form:
		return true
	}
	return false
}

// Summary devolve o texto principal da mensagem, usado no histórico
func Summary(m Message) string {
	switch v := m.(type) {
	case *Text:
		return v.Content
	case *Cards:
		return v.Content
	case *Form:
		if v.Notice != "" {
			return v.Title + "\n" + v.Notice
		}
		return v.Title
	case *Error:
		return v.Message
	}
	return ""
}
