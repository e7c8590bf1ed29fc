package vim

import (
	"sync"
	"unicode"
)

// registerSlots sizes the fixed array RegisterStore indexes by name: every
// printable ASCII byte plus the handful of punctuation registers below.
const registerSlots = 128

// Register is spec.md §3's "byte buffer plus a linewise flag": the unit
// a yank, delete, or put reads and writes.
type Register struct {
	Content   string
	Linewise  bool
	Blockwise bool
}

// RegisterStore is the fixed array of named registers spec.md §3
// describes, indexed directly by register name (a rune < registerSlots)
// rather than a map, plus the numbered-delete ring (registers 1-9) and
// the search-pattern register search.go reads back for 'n'/'N'.
type RegisterStore struct {
	mu                sync.RWMutex
	slots             [registerSlots]Register
	numberedRegisters [9]*Register
}

// NewRegisterStore creates a store with every register empty.
func NewRegisterStore() *RegisterStore {
	rs := &RegisterStore{}
	for i := 1; i <= 9; i++ {
		rs.numberedRegisters[i-1] = &rs.slots[rune('0'+i)]
	}
	return rs
}

func (rs *RegisterStore) slot(name rune) *Register {
	if name < 0 || int(name) >= registerSlots {
		return nil
	}
	return &rs.slots[name]
}

// Get returns a register's content, linewise, and blockwise flags.
// Uppercase named registers alias their lowercase counterpart.
func (rs *RegisterStore) Get(name rune) (content string, linewise, blockwise bool) {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()

	reg := rs.slot(name)
	if reg == nil {
		return "", false, false
	}
	return reg.Content, reg.Linewise, reg.Blockwise
}

// Set stores content in a register. The black hole register ('_')
// discards everything written to it; uppercase named registers append to
// their lowercase counterpart instead of replacing it.
func (rs *RegisterStore) Set(name rune, content string, linewise, blockwise bool) {
	if name == '_' {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	appendMode := unicode.IsUpper(name)
	if appendMode {
		name = unicode.ToLower(name)
	}

	reg := rs.slot(name)
	if reg == nil {
		return
	}

	if appendMode && isNamedRegister(name) {
		if reg.Linewise {
			reg.Content += "\n" + content
		} else {
			reg.Content += content
		}
		return
	}
	reg.Content, reg.Linewise, reg.Blockwise = content, linewise, blockwise
}

func isNamedRegister(name rune) bool {
	return name >= 'a' && name <= 'z'
}

// SetYank fills register 0 (the last-yank register) and the unnamed
// register ('"'), matching spec.md §4.6's "y writes yanked text to both."
func (rs *RegisterStore) SetYank(content string, linewise, blockwise bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.slots['0'] = Register{Content: content, Linewise: linewise, Blockwise: blockwise}
	rs.slots['"'] = Register{Content: content, Linewise: linewise, Blockwise: blockwise}
}

// SetDelete fills the unnamed register and, for a non-small delete,
// rotates the numbered-delete ring (1 <- new, 2 <- old 1, ... 9 <- old
// 8). A "small" delete (spanning less than one line) goes to '-' instead
// of disturbing the ring, matching Vim's own small-delete register rule.
func (rs *RegisterStore) SetDelete(content string, linewise, blockwise bool, small bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if small {
		rs.slots['-'] = Register{Content: content, Linewise: linewise, Blockwise: blockwise}
		rs.slots['"'] = Register{Content: content, Linewise: linewise, Blockwise: blockwise}
		return
	}

	for i := 8; i > 0; i-- {
		*rs.numberedRegisters[i] = *rs.numberedRegisters[i-1]
	}
	*rs.numberedRegisters[0] = Register{Content: content, Linewise: linewise, Blockwise: blockwise}
	rs.slots['"'] = Register{Content: content, Linewise: linewise, Blockwise: blockwise}
}

// SetLastSearch updates the '/' register with the most recent search
// pattern. search.go reads it back on 'n'/'N' when no new pattern has
// been entered since.
func (rs *RegisterStore) SetLastSearch(pattern string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.slots['/'].Content = pattern
}

// IsValidRegister reports whether name is an addressable register: a
// double-quote, a letter (upper or lower), a digit, or one of the
// punctuation registers - _ / . : % # = + *.
func IsValidRegister(name rune) bool {
	switch {
	case name == '"':
		return true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '-', name == '_', name == '/':
		return true
	case name == '.', name == ':', name == '%', name == '#', name == '=', name == '+', name == '*':
		return true
	default:
		return false
	}
}

// PrivateStore holds one cursor's implicit yank/delete target, keyed by
// the cursor's stable ID rather than a register name (spec §3: "used
// only in multi-cursor mode"). Without this, every cursor's unnamed
// delete/yank would land in the single shared unnamed register above,
// so the last cursor to finish would silently overwrite every other
// cursor's content before a later per-cursor "p" could read it back.
type PrivateStore struct {
	mu   sync.RWMutex
	regs map[uint64]*Register
}

// NewPrivateStore creates an empty per-cursor register store.
func NewPrivateStore() *PrivateStore {
	return &PrivateStore{regs: make(map[uint64]*Register)}
}

// Get returns cursorID's private register content, linewise, blockwise.
// Ok is false if the cursor has never yanked or deleted into it, in
// which case callers fall back to the shared unnamed register.
func (p *PrivateStore) Get(cursorID uint64) (content string, linewise, blockwise, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	reg, found := p.regs[cursorID]
	if !found {
		return "", false, false, false
	}
	return reg.Content, reg.Linewise, reg.Blockwise, true
}

// SetYank records cursorID's yank, mirroring RegisterStore.SetYank but
// scoped to one cursor instead of the shared register 0/unnamed pair.
func (p *PrivateStore) SetYank(cursorID uint64, content string, linewise, blockwise bool) {
	p.set(cursorID, content, linewise, blockwise)
}

// SetDelete records cursorID's delete, mirroring RegisterStore.SetDelete
// minus the numbered-register rotation, which has no per-cursor analogue.
func (p *PrivateStore) SetDelete(cursorID uint64, content string, linewise, blockwise bool) {
	p.set(cursorID, content, linewise, blockwise)
}

func (p *PrivateStore) set(cursorID uint64, content string, linewise, blockwise bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	reg, ok := p.regs[cursorID]
	if !ok {
		reg = &Register{}
		p.regs[cursorID] = reg
	}
	reg.Content, reg.Linewise, reg.Blockwise = content, linewise, blockwise
}

// Forget drops cursorID's private register once its cursor is disposed,
// so a long editing session doesn't accumulate registers for cursors
// that no longer exist.
func (p *PrivateStore) Forget(cursorID uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.regs, cursorID)
}
