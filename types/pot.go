package types

// ---- Potentiometer payloads (CLI output, JSON/CBOR) ----

type Kind string

const (
	KindPot   Kind = "pot"
	KindFrame Kind = "frame"
	KindTxLog Kind = "tx_log"
)

// Info envelope each payload is wrapped in.
type Info struct {
	SchemaVersion int         `json:"schema_version"`
	Driver        string      `json:"driver"`
	Kind          Kind        `json:"kind"`
	Detail        interface{} `json:"detail,omitempty"`
}

// FrameInfo is the decoded view of one frame.
type FrameInfo struct {
	Hex       string `json:"hex"`
	Bytes     []byte `json:"bytes"`
	Kind      string `json:"kind"` // "probe", "command", "write"
	Selector  uint8  `json:"selector"`
	Direction string `json:"direction"`
	Op        string `json:"op,omitempty"`
	MemAddr   uint8  `json:"mem_addr"`
	Index     uint8  `json:"index"`
	Data      *uint8 `json:"data,omitempty"`
	Restart   string `json:"restart,omitempty"` // address byte after a read restart
}

// TerminalState mirrors one TCON nibble.
type TerminalState struct {
	HW bool `json:"hw"`
	A  bool `json:"a"`
	W  bool `json:"w"`
	B  bool `json:"b"`
}

// PotInfo is the static description of a configured pot.
type PotInfo struct {
	ID       string `json:"id"`
	Bus      string `json:"bus"`
	Addr     uint16 `json:"addr"`
	Selector uint8  `json:"selector"`
	Channel  uint8  `json:"channel"`
	Steps    uint16 `json:"steps"`
}

// PotState is the read-back state of a pot.
type PotState struct {
	Pot       PotInfo       `json:"pot"`
	Wiper     uint16        `json:"wiper"`
	Percent   uint8         `json:"percent"`
	Terminals TerminalState `json:"terminals"`
	Error     string        `json:"error,omitempty"`
}

// TxRecord is one emulated bus transaction.
type TxRecord struct {
	Addr  uint16 `json:"addr"`
	Write string `json:"w"`
	Read  string `json:"r,omitempty"`
	Error string `json:"error,omitempty"`
}
