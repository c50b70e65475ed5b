package session

// Kind é o estado de diálogo de uma sessão
type Kind int

const (
	Main Kind = iota
	AwaitingDeviceSearch
	AwaitingForm
	AwaitingConfirmation
)

func (k Kind) String() string {
	switch k {
	case AwaitingDeviceSearch:
		return "awaiting_device_search"
	case AwaitingForm:
		return "awaiting_form"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	}
	return "main"
}

// State é o estado guardado por sessão. Form só vale em AwaitingForm;
// Target e Reason só valem em AwaitingConfirmation.
type State struct {
	Kind   Kind
	Form   string
	Target string
	Reason string
}

// Pending informa se a sessão espera uma continuação
func (s State) Pending() bool {
	return s.Kind != Main
}
