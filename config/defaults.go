package config

// Built-in boards, keyed by name and selected with "builtin:<name>".

const boardDemo = `
bus: sim
steps: 257
pots:
  - id: gain
    selector: 0
    channel: 0
    wiper: 128
  - id: offset
    selector: 0
    channel: 1
    wiper: 32
    terminals: {a: false}
  - id: tone
    selector: 1
    channel: 3
    wiper: 200
`

var embeddedBoards = map[string][]byte{
	"demo": []byte(boardDemo),
}
