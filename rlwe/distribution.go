package rlwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Pro7ech/poulpy/buffer"
)

// Distribution tags the secret-sampling strategy a GLWESecret or
// GLWEPublicKey was (or will be) filled with. None is the zero value:
// encrypt_sk/encrypt_pk panic if the key they're handed is still None.
type Distribution int

const (
	None Distribution = iota
	ZERO
	TernaryProb
	TernaryFixed
	BinaryProb
	BinaryFixed
	BinaryBlock
)

func (d Distribution) String() string {
	switch d {
	case None:
		return "None"
	case ZERO:
		return "ZERO"
	case TernaryProb:
		return "TernaryProb"
	case TernaryFixed:
		return "TernaryFixed"
	case BinaryProb:
		return "BinaryProb"
	case BinaryFixed:
		return "BinaryFixed"
	case BinaryBlock:
		return "BinaryBlock"
	default:
		return "Unknown"
	}
}

// DistributionParameters bundles a Distribution tag with the scalar
// parameter it needs, if any: a probability for the *Prob variants, a
// hamming weight for the *Fixed variants, or a block size for
// BinaryBlock. ZERO and None carry no payload.
type DistributionParameters struct {
	Dist      Distribution
	P         float64
	HW        int
	BlockSize int
}

// BinarySize returns the serialized size of the receiver in bytes per
// the tag/payload layout: u8 tag, then tag-dependent payload.
func (d DistributionParameters) BinarySize() int {
	switch d.Dist {
	case TernaryFixed, BinaryFixed:
		return 1 + 4
	case TernaryProb, BinaryProb:
		return 1 + 8
	case BinaryBlock:
		return 1 + 4
	default:
		return 1
	}
}

func (d DistributionParameters) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var inc int64
		if inc, err = buffer.WriteUint8(w, uint8(d.Dist)); err != nil {
			return n + inc, err
		}
		n += inc
		switch d.Dist {
		case TernaryFixed, BinaryFixed:
			if inc, err = buffer.WriteUint32(w, uint32(d.HW)); err != nil {
				return n + inc, err
			}
			n += inc
		case TernaryProb, BinaryProb:
			if inc, err = buffer.WriteAsUint64[float64](w, d.P); err != nil {
				return n + inc, err
			}
			n += inc
		case BinaryBlock:
			if inc, err = buffer.WriteUint32(w, uint32(d.BlockSize)); err != nil {
				return n + inc, err
			}
			n += inc
		}
		return n, w.Flush()
	default:
		return d.WriteTo(bufio.NewWriter(w))
	}
}

func (d *DistributionParameters) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		var inc int64
		var tag uint8
		if inc, err = buffer.ReadUint8(r, &tag); err != nil {
			return n + inc, err
		}
		n += inc
		dist := Distribution(tag)
		if dist < None || dist > BinaryBlock {
			return n, fmt.Errorf("%w: invalid distribution tag %d", ErrInvalidData, tag)
		}
		d.Dist = dist
		switch dist {
		case TernaryFixed, BinaryFixed:
			var hw uint32
			if inc, err = buffer.ReadUint32(r, &hw); err != nil {
				return n + inc, err
			}
			d.HW = int(hw)
			n += inc
		case TernaryProb, BinaryProb:
			if inc, err = buffer.ReadAsUint64[float64](r, &d.P); err != nil {
				return n + inc, err
			}
			n += inc
		case BinaryBlock:
			var blockSize uint32
			if inc, err = buffer.ReadUint32(r, &blockSize); err != nil {
				return n + inc, err
			}
			d.BlockSize = int(blockSize)
			n += inc
		}
		return n, nil
	default:
		return d.ReadFrom(bufio.NewReader(r))
	}
}

func (d DistributionParameters) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(d.BinarySize())
	_, err := d.WriteTo(buf)
	return buf.Bytes(), err
}

func (d *DistributionParameters) UnmarshalBinary(p []byte) error {
	_, err := d.ReadFrom(buffer.NewBuffer(p))
	return err
}

func (d DistributionParameters) Equal(other DistributionParameters) bool {
	return d.Dist == other.Dist && d.P == other.P && d.HW == other.HW && d.BlockSize == other.BlockSize
}
