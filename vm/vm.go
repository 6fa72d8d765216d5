// Package vm implements the tiny register-machine interpreter that every
// byte-genome domain in evocore compiles down to. A genome is read as a flat
// sequence of 3-byte "nucleos" — (opcode, dest, src) — and every raw byte
// clamps into a legal encoding by modulo reduction, so there is no such thing
// as an illegal genome: every byte string is a runnable program.
package vm

const (
	// NucleoSize is the byte width of one instruction.
	NucleoSize = 3
	// NumRegisters is the fixed register file size, R0-R3.
	NumRegisters = 4
	// MaxSteps bounds total executed nucleos across a run (and, for
	// domains that repeat the program body externally, across all
	// repeats), guaranteeing termination without a native halt opcode.
	MaxSteps = 1000
)

// Nucleo is one decoded instruction: opcode plus two register operands,
// already clamped into range.
type Nucleo struct {
	Op   Opcode
	Dest uint8
	Src  uint8
}

// Registers is the machine's register file, initialized by Machine.Run to
// R0=0, R1=1, R2=0, R3=0 before every program executes.
type Registers [NumRegisters]uint64

// Machine is a register-machine interpreter bound to a fixed opcode-set
// size K. Domains construct one Machine per opcode table (K=9 for
// Fibonacci-style sets without native looping, K=12 for PowersOfTwo-style
// sets that keep Dec/Double/Loop) and reuse it across every evaluation.
type Machine struct {
	// OpcodeCount is K: the modulus every raw opcode byte clamps against.
	OpcodeCount int
}

// New builds a Machine whose opcode bytes clamp modulo opcodeCount.
func New(opcodeCount int) *Machine {
	return &Machine{OpcodeCount: opcodeCount}
}

// Decode reads program as a sequence of 3-byte nucleos, clamping every raw
// byte into a legal (opcode, dest, src) triple. Trailing bytes that don't
// fill a complete nucleo are ignored.
func (m *Machine) Decode(program []byte) []Nucleo {
	count := len(program) / NucleoSize
	nucleos := make([]Nucleo, count)
	for i := 0; i < count; i++ {
		raw := program[i*NucleoSize : i*NucleoSize+NucleoSize]
		nucleos[i] = Nucleo{
			Op:   Opcode(int(raw[0]) % m.OpcodeCount),
			Dest: raw[1] % NumRegisters,
			Src:  raw[2] % NumRegisters,
		}
	}
	return nucleos
}

// Run decodes program and executes it once, start to end, returning the
// final value of R0. n is the value a LOADN instruction writes into its
// destination register, giving domains a way to feed an input into the
// program without a dedicated input opcode.
func (m *Machine) Run(program []byte, n uint64) uint64 {
	return m.RunRepeated(program, n, 1)
}

// RunRepeated decodes program once and executes its straight-line body
// `repeats` times in sequence, carrying the register file across
// repetitions and resetting the program counter to 0 at the start of each
// repeat. This is how Fibonacci-style domains (whose opcode set has no
// native Loop) drive repetition from outside the machine: repeats is
// typically the domain's input n. A single step counter is shared across
// every repeat, so MaxSteps bounds the whole call, not each repeat
// individually.
func (m *Machine) RunRepeated(program []byte, n uint64, repeats int) uint64 {
	nucleos := m.Decode(program)
	regs := Registers{0, 1, 0, 0}

	steps := 0
	for r := 0; r < repeats && steps < MaxSteps; r++ {
		pc := 0
		for pc >= 0 && pc < len(nucleos) {
			if steps >= MaxSteps {
				break
			}
			nuc := nucleos[pc]
			nextPC := pc + 1

			switch nuc.Op {
			case OpNOP:
			case OpZERO:
				regs[nuc.Dest] = 0
			case OpINC:
				regs[nuc.Dest]++
			case OpMOV:
				regs[nuc.Dest] = regs[nuc.Src]
			case OpADD:
				regs[nuc.Dest] += regs[nuc.Src]
			case OpSWAP:
				regs[nuc.Dest], regs[nuc.Src] = regs[nuc.Src], regs[nuc.Dest]
			case OpLOADN:
				regs[nuc.Dest] = n
			case OpCONST1:
				regs[nuc.Dest] = 1
			case OpCONST0:
				regs[nuc.Dest] = 0
			case OpDEC:
				if regs[nuc.Dest] > 0 {
					regs[nuc.Dest]--
				}
			case OpDOUBLE:
				regs[nuc.Dest] *= 2
			case OpLOOP:
				// Dest doubles as the jump target nucleo index; it was
				// already clamped into [0, NumRegisters) by Decode like
				// every other dest byte, so backward jumps can only
				// reach the first four nucleos of the program.
				if regs[nuc.Src] > 0 {
					regs[nuc.Src]--
					nextPC = int(nuc.Dest)
				}
			}

			pc = nextPC
			steps++
		}
	}

	return regs[0]
}
