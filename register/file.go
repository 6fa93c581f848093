package register

import "fmt"

// File is a register file, the storage of a running machine.  Registers are
// addressed by name or by their index in the file's Arch.
type File struct {
	arch Arch
	regs []Register
}

// Arch returns the architecture the file was made from.
func (f *File) Arch() Arch {
	return f.arch
}

// SetTrace installs fn as the Trace function of every register in f.
func (f *File) SetTrace(fn func(name Reg, oldval int32, newval int32)) {
	for i := range f.regs {
		f.regs[i].Trace = fn
	}
}

// GetRegister returns a pointer the register at index i in the file or an
// error if there is no such register.
func (f *File) GetRegister(i int) (*Register, error) {
	if 0 <= i && i < len(f.regs) {
		return &f.regs[i], nil
	}
	return nil, fmt.Errorf("invalid register index: %d", i)
}

// Lookup returns the named register.
func (f *File) Lookup(name Reg) (*Register, error) {
	i, ok := f.arch.GetRegisterIndex(name)
	if !ok {
		return nil, fmt.Errorf("invalid register: %v", name)
	}
	return f.GetRegister(i)
}

// Get returns the value of the named register.  Get returns an error if the
// register does not exist or has never been written.
func (f *File) Get(name Reg) (int32, error) {
	r, err := f.Lookup(name)
	if err != nil {
		return 0, err
	}
	v, ok := r.GetValue()
	if !ok {
		return 0, fmt.Errorf("unset register: %v", name)
	}
	return v, nil
}

// Set writes v to the named register.
func (f *File) Set(name Reg, v int32) error {
	r, err := f.Lookup(name)
	if err != nil {
		return err
	}
	r.SetValue(v)
	return nil
}
