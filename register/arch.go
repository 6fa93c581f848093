package register

import (
	"errors"
	"fmt"
)

// MaxRegisters is the size of the largest register pool, one register for
// each ASCII letter.
const MaxRegisters = len(poolNames)

// DefaultRegisters is the size of the register pool used by DefaultArch.
const DefaultRegisters = MaxRegisters

const poolNames = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrOutOfRegisters is returned by an Allocator when every register of its
// architecture has been handed out.
var ErrOutOfRegisters = errors.New("out of registers")

// Arch is a register architecture: an ordered set of register names.
type Arch interface {
	// Registers returns the ordered list of registers defined by the
	// architecture.
	Registers() []Reg
	// GetRegisterIndex returns the index of the named register within the
	// architecture's defined array.  If the named register is not defined in
	// the Arch then GetRegisterIndex must return the pair (-1, false).
	GetRegisterIndex(name Reg) (int, bool)
	// MakeFile returns a new register file containing an unset register for
	// each name in the Arch.
	MakeFile() *File
}

// MakeArch creates a new Arch that defines registers for each name given in
// identical order.  If the same name is given in more than one position an
// error will be returned.
func MakeArch(name ...Reg) (Arch, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("register architecture has no registers")
	}
	a := &registerArch{
		names: append([]Reg(nil), name...),
		index: make(map[Reg]int, len(name)),
	}
	for i, r := range a.names {
		if _, ok := a.index[r]; ok {
			return nil, fmt.Errorf("register names are not unique: %v", r)
		}
		a.index[r] = i
	}
	return a, nil
}

// MustArch is the same as MakeArch but a runtime panic is issued when MakeArch
// would return an error.
func MustArch(name ...Reg) Arch {
	a, err := MakeArch(name...)
	if err != nil {
		panic("unable to construct register architecture: " + err.Error())
	}
	return a
}

// Pool returns an Arch with the first n registers of the letter pool:
// a through z followed by A through Z.
func Pool(n int) (Arch, error) {
	if n < 1 || n > MaxRegisters {
		return nil, fmt.Errorf("register pool size must be between 1 and %d: %d", MaxRegisters, n)
	}
	return MakeArch([]Reg(poolNames[:n])...)
}

// DefaultArch returns the Arch with DefaultRegisters registers.
func DefaultArch() Arch {
	a, err := Pool(DefaultRegisters)
	if err != nil {
		panic(err)
	}
	return a
}

type registerArch struct {
	names []Reg
	index map[Reg]int
}

var _ Arch = (*registerArch)(nil)

func (a *registerArch) Registers() []Reg {
	lis := make([]Reg, len(a.names))
	copy(lis, a.names)
	return lis
}

func (a *registerArch) GetRegisterIndex(name Reg) (int, bool) {
	i, ok := a.index[name]
	if !ok {
		return -1, false
	}
	return i, true
}

func (a *registerArch) MakeFile() *File {
	return &File{arch: a, regs: MakeSlice(a.names...)}
}

// Allocator hands out the registers of an Arch in order.  Registers are never
// returned to the allocator.
type Allocator struct {
	arch Arch
	regs []Reg
	next int
}

// NewAllocator returns an Allocator for arch.
func NewAllocator(arch Arch) *Allocator {
	return &Allocator{arch: arch, regs: arch.Registers()}
}

// Alloc returns the next unused register or ErrOutOfRegisters.
func (a *Allocator) Alloc() (Reg, error) {
	if a.next >= len(a.regs) {
		return 0, ErrOutOfRegisters
	}
	r := a.regs[a.next]
	a.next++
	return r, nil
}

// Used returns the number of registers allocated so far.
func (a *Allocator) Used() int {
	return a.next
}
