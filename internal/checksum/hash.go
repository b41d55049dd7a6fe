package checksum

import "hash"

// Size is the size of a CRC-32 checksum in bytes.
const Size = 4

// digest is a streaming hash.Hash32 over the bitwise engine.
type digest struct {
	crc uint32
}

// New creates a hash.Hash32 computing the same CRC-32 as Checksum.
// Its Sum method lays the value out in big-endian order.
func New() hash.Hash32 {
	return &digest{}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.crc = 0 }

func (d *digest) Write(p []byte) (int, error) {
	d.crc = Update(d.crc, p)
	return len(p), nil
}

func (d *digest) Sum32() uint32 { return d.crc }

func (d *digest) Sum(in []byte) []byte {
	s := d.crc
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
