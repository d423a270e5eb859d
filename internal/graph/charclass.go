package graph

// CharClass is a predicate over the byte alphabet, backed by a 256-bit
// bitmap for O(1) membership tests. The representation is grounded on
// the teacher's createBitmap/generateBitmapCheck technique for character
// class codegen, adapted here to a runtime-tested predicate instead of
// an emitted Go condition.
type CharClass struct {
	name   string
	bitmap [32]byte
}

func newCharClass(name string) *CharClass {
	return &CharClass{name: name}
}

func (c *CharClass) set(b byte) {
	c.bitmap[b/8] |= 1 << (b % 8)
}

// Test reports whether b is a member of the class.
func (c *CharClass) Test(b byte) bool {
	return c.bitmap[b/8]&(1<<(b%8)) != 0
}

// Name returns the class's diagnostic name (e.g. "\\d", "[...]").
func (c *CharClass) Name() string {
	return c.name
}

// Negated returns a new class matching exactly the bytes c does not,
// except the zero byte: a negated class never matches '\0', the same
// exclusion Any makes for ".".
func (c *CharClass) Negated(name string) *CharClass {
	neg := newCharClass(name)
	for i := range neg.bitmap {
		neg.bitmap[i] = ^c.bitmap[i]
	}
	neg.bitmap[0] &^= 1
	return neg
}

// NewClassFromRanges builds a class matching any byte within one of the
// given inclusive [lo, hi] ranges.
func NewClassFromRanges(name string, ranges [][2]byte) *CharClass {
	c := newCharClass(name)
	for _, r := range ranges {
		for b := int(r[0]); b <= int(r[1]); b++ {
			c.set(byte(b))
		}
	}
	return c
}

// NewClassFromSet builds a class matching exactly the given bytes.
func NewClassFromSet(name string, bytes []byte) *CharClass {
	c := newCharClass(name)
	for _, b := range bytes {
		c.set(b)
	}
	return c
}

// Bit-exact definitions from spec §6 "Character classes".

// DigitClass matches '0'..'9'.
func DigitClass() *CharClass {
	return NewClassFromRanges(`\d`, [][2]byte{{'0', '9'}})
}

// WordClass matches 'A'-'Z', 'a'-'z', '0'-'9', '_'.
func WordClass() *CharClass {
	return NewClassFromRanges(`\w`, [][2]byte{
		{'A', 'Z'}, {'a', 'z'}, {'0', '9'}, {'_', '_'},
	})
}

// SpaceClass matches ' ', '\t', '\r', '\v', '\n', '\f'.
func SpaceClass() *CharClass {
	return NewClassFromSet(`\s`, []byte{' ', '\t', '\r', '\v', '\n', '\f'})
}
