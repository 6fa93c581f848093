// Package register defines the registers of the abstract register machine and
// the allocator the compiler uses to assign them.
package register

// Reg names a register.  Registers are single characters.
type Reg rune

func (r Reg) String() string {
	return string(r)
}

// Register provides named storage for a single integer.  A register is unset
// until the first call to SetValue.
type Register struct {
	Value int32
	Set   bool
	Name  Reg
	Trace func(name Reg, oldval int32, newval int32)
}

// New initializes and returns an unset register with the given name.
func New(name Reg) *Register {
	return (&Register{}).init(name)
}

// MakeSlice returns unset registers with the given names, in order.
func MakeSlice(names ...Reg) []Register {
	storage := make([]Register, len(names))
	for i := range storage {
		storage[i].init(names[i])
	}
	return storage
}

func (r *Register) init(name Reg) *Register {
	*r = Register{Name: name}
	return r
}

// SetValue stores v in the register.  If r.Trace is non-nil SetValue will call
// r.Trace.
func (r *Register) SetValue(v int32) {
	if r.Trace != nil {
		r.Trace(r.Name, r.Value, v)
	}
	r.Value = v
	r.Set = true
}

// GetValue returns the value stored in the register and false if the register
// has never been written.
func (r *Register) GetValue() (int32, bool) {
	return r.Value, r.Set
}
