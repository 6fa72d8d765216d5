package vm

// Opcode identifies a decoded nucleo operation. The ordinal assignment
// matters: Fibonacci-style domains clamp into the first 9 values (K=9),
// dropping Dec, Double, and Loop; PowersOfTwo-style domains clamp into the
// full 12 (K=12). See spec §4.4.
type Opcode uint8

const (
	OpNOP Opcode = iota
	OpZERO
	OpINC
	OpMOV
	OpADD
	OpSWAP
	OpLOADN
	OpCONST1
	OpCONST0
	OpDEC
	OpDOUBLE
	OpLOOP

	// OpcodeCountFull is K for opcode sets that include Dec/Double/Loop
	// (PowersOfTwo).
	OpcodeCountFull = 12
	// OpcodeCountNoLoop is K for opcode sets without native looping
	// (Fibonacci), which drive repetition externally instead.
	OpcodeCountNoLoop = 9
)

func (op Opcode) String() string {
	switch op {
	case OpNOP:
		return "NOP"
	case OpZERO:
		return "ZERO"
	case OpINC:
		return "INC"
	case OpMOV:
		return "MOV"
	case OpADD:
		return "ADD"
	case OpSWAP:
		return "SWAP"
	case OpLOADN:
		return "LOADN"
	case OpCONST1:
		return "CONST1"
	case OpCONST0:
		return "CONST0"
	case OpDEC:
		return "DEC"
	case OpDOUBLE:
		return "DOUBLE"
	case OpLOOP:
		return "LOOP"
	default:
		return "UNKNOWN"
	}
}
