package handshake

// Message type byte, the first octet of every handshake frame.
const (
	TypeClientHello       byte = 0x01
	TypeServerHello       byte = 0x02
	TypeCertificate       byte = 0x03
	TypeCertificateVerify byte = 0x04
	TypeFinished          byte = 0x05
	TypeKeyUpdate         byte = 0x06
	TypeAlert             byte = 0x07
)

// MaxHelloFieldLen guards every length-prefixed field inside a handshake
// frame. A negative or oversized declared length aborts the connection
// before any allocation happens.
const MaxHelloFieldLen = 16 * 1024

// AlertCode enumerates the single-byte payload carried by an Alert frame.
type AlertCode byte

const (
	AlertUnsupportedAlgorithm AlertCode = 1
	AlertDecodeError          AlertCode = 2
	AlertHandshakeFailure     AlertCode = 3
	AlertUnexpectedMessage    AlertCode = 4
)

// Step identifies the handshake's position in the state machine, tracked
// per-participant alongside session.ParticipantState.
type Step int

const (
	StepExpectClientHello Step = iota
	StepExpectServerHello
	StepExpectFinished
	StepDone
)
