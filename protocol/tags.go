// Package protocol declares the byte-level vocabulary of the PostgreSQL v3
// wire protocol as seen from the client: the frontend message tags this
// module sends, the backend message tags it recognizes, and the version
// codes exchanged during startup.
//
// The tag values are identical to the wire bytes PostgreSQL itself defines;
// only the Go-side naming reflects which end of the connection emits them.
package protocol

// FrontendTag identifies a message this client sends to the server.
type FrontendTag byte

// Frontend message tags. See
// https://www.postgresql.org/docs/current/protocol-message-formats.html
const (
	Bind        FrontendTag = 'B'
	Close       FrontendTag = 'C'
	CopyData    FrontendTag = 'd'
	CopyDone    FrontendTag = 'c'
	CopyFail    FrontendTag = 'f'
	Describe    FrontendTag = 'D'
	Execute     FrontendTag = 'E'
	Flush       FrontendTag = 'H'
	FunctionCal FrontendTag = 'F'
	Parse       FrontendTag = 'P'
	Password    FrontendTag = 'p'
	Query       FrontendTag = 'Q'
	Sync        FrontendTag = 'S'
	Terminate   FrontendTag = 'X'
)

func (t FrontendTag) String() string {
	switch t {
	case Bind:
		return "Bind"
	case Close:
		return "Close"
	case CopyData:
		return "CopyData"
	case CopyDone:
		return "CopyDone"
	case CopyFail:
		return "CopyFail"
	case Describe:
		return "Describe"
	case Execute:
		return "Execute"
	case Flush:
		return "Flush"
	case FunctionCal:
		return "FunctionCall"
	case Parse:
		return "Parse"
	case Password:
		return "PasswordMessage"
	case Query:
		return "Query"
	case Sync:
		return "Sync"
	case Terminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

// BackendTag identifies a message the server sends back to this client.
type BackendTag byte

// Backend message tags this client recognizes.
const (
	Authentication       BackendTag = 'R'
	BackendKeyData       BackendTag = 'K'
	BindComplete         BackendTag = '2'
	CloseComplete        BackendTag = '3'
	CommandComplete      BackendTag = 'C'
	BackendCopyData      BackendTag = 'd'
	BackendCopyDone      BackendTag = 'c'
	CopyInResponse       BackendTag = 'G'
	CopyOutResponse      BackendTag = 'H'
	CopyBothResponse     BackendTag = 'W'
	DataRow              BackendTag = 'D'
	EmptyQueryResponse   BackendTag = 'I'
	ErrorResponse        BackendTag = 'E'
	FunctionCallResponse BackendTag = 'V'
	NoData               BackendTag = 'n'
	NoticeResponse       BackendTag = 'N'
	NotificationResponse BackendTag = 'A'
	ParameterDescription BackendTag = 't'
	ParameterStatus      BackendTag = 'S'
	ParseComplete        BackendTag = '1'
	PortalSuspended      BackendTag = 's'
	ReadyForQuery        BackendTag = 'Z'
	RowDescription       BackendTag = 'T'
)

func (t BackendTag) String() string {
	switch t {
	case Authentication:
		return "Authentication"
	case BackendKeyData:
		return "BackendKeyData"
	case BindComplete:
		return "BindComplete"
	case CloseComplete:
		return "CloseComplete"
	case CommandComplete:
		return "CommandComplete"
	case BackendCopyData:
		return "CopyData"
	case BackendCopyDone:
		return "CopyDone"
	case CopyInResponse:
		return "CopyInResponse"
	case CopyOutResponse:
		return "CopyOutResponse"
	case CopyBothResponse:
		return "CopyBothResponse"
	case DataRow:
		return "DataRow"
	case EmptyQueryResponse:
		return "EmptyQueryResponse"
	case ErrorResponse:
		return "ErrorResponse"
	case FunctionCallResponse:
		return "FunctionCallResponse"
	case NoData:
		return "NoData"
	case NoticeResponse:
		return "NoticeResponse"
	case NotificationResponse:
		return "NotificationResponse"
	case ParameterDescription:
		return "ParameterDescription"
	case ParameterStatus:
		return "ParameterStatus"
	case ParseComplete:
		return "ParseComplete"
	case PortalSuspended:
		return "PortalSuspended"
	case ReadyForQuery:
		return "ReadyForQuery"
	case RowDescription:
		return "RowDescription"
	default:
		return "Unknown"
	}
}

// FormatCode represents the wire encoding of a parameter or result column.
type FormatCode int16

const (
	// TextFormat is PostgreSQL's default, human-readable encoding.
	TextFormat FormatCode = 0
	// BinaryFormat is the bit-exact binary encoding.
	BinaryFormat FormatCode = 1
)

// StartupVersion identifies the version/request code sent in the first,
// untagged message of a connection.
type StartupVersion uint32

const (
	Version30         StartupVersion = 196608   // (3 << 16) + 0
	VersionCancel     StartupVersion = 80877102 // (1234 << 16) + 5678
	VersionSSLRequest StartupVersion = 80877103 // (1234 << 16) + 5679
)

// TransactionStatus is the single byte ReadyForQuery carries to describe the
// server's current transaction state.
type TransactionStatus byte

const (
	TxIdle        TransactionStatus = 'I'
	TxInBlock     TransactionStatus = 'T'
	TxFailedBlock TransactionStatus = 'E'
)
