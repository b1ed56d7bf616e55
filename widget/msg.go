package widget

// Msg is a widget lifecycle or input message. The host's event loop
// produces these; widget callbacks consume them.
type Msg int

const (
	MsgInit Msg = iota
	MsgFocus
	MsgUnfocus
	MsgDraw
	MsgKey
	MsgHotkey
	MsgPostKey
	MsgAction
	MsgCursor
	MsgIdle
	MsgResize
	MsgValidate
	MsgDestroy
)

func (m Msg) String() string {
	switch m {
	case MsgInit:
		return "init"
	case MsgFocus:
		return "focus"
	case MsgUnfocus:
		return "unfocus"
	case MsgDraw:
		return "draw"
	case MsgKey:
		return "key"
	case MsgHotkey:
		return "hotkey"
	case MsgPostKey:
		return "post-key"
	case MsgAction:
		return "action"
	case MsgCursor:
		return "cursor"
	case MsgIdle:
		return "idle"
	case MsgResize:
		return "resize"
	case MsgValidate:
		return "validate"
	case MsgDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Result is a callback's verdict on a message.
type Result int

const (
	NotHandled Result = iota
	Handled
)
