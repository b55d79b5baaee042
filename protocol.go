package emitter

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/pkg/errors"
)

// ---------------------------------------------record---------------------------------------------

// Each datagram carries exactly one sample record, all fields are
// little endian, there is no framing beyond the fixed size.
//
// +-----------------+----------------+-------------------+
// | seconds(uint32) | nanos(uint32)  | loc type(uint32)  |
// +-----------------+----------------+-------------------+
// |     4 bytes     |    4 bytes     |      4 bytes      |
// +-----------------+----------------+-------------------+
//
// +------------+------------+------------+----------------------+
// | x(float32) | y(float32) | z(float32) | i, j, k, r(float32)  |
// +------------+------------+------------+----------------------+
// |  4 bytes   |  4 bytes   |  4 bytes   |       16 bytes       |
// +------------+------------+------------+----------------------+
//
// i, j, k and r are reserved for an orientation quaternion and are
// always zero.
const RecordSize = 40

// locTypePlayer is the only location type the receiver understands.
const locTypePlayer = 0

// Position is a coordinate triple in receiver world units.
type Position struct {
	X float32
	Y float32
	Z float32
}

// Record is a timestamped position sample.
type Record struct {
	Seconds uint32
	Nanos   uint32
	LocType uint32

	Position

	Reserved [4]float32
}

// NewRecord builds a record for the position sampled at now.
func NewRecord(now time.Time, pos Position) Record {
	var sec uint32
	unix := now.Unix()
	switch {
	case unix < 0:
		sec = 0
	case unix > math.MaxUint32:
		sec = math.MaxUint32
	default:
		sec = uint32(unix)
	}
	return Record{
		Seconds:  sec,
		Nanos:    uint32(now.Nanosecond()),
		LocType:  locTypePlayer,
		Position: pos,
	}
}

// Time returns the timestamp of the record.
func (r *Record) Time() time.Time {
	return time.Unix(int64(r.Seconds), int64(r.Nanos))
}

// AppendBinary appends the encoded record to b.
func (r *Record) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, r.Seconds)
	b = binary.LittleEndian.AppendUint32(b, r.Nanos)
	b = binary.LittleEndian.AppendUint32(b, r.LocType)
	b = appendFloat32(b, r.X)
	b = appendFloat32(b, r.Y)
	b = appendFloat32(b, r.Z)
	for i := 0; i < len(r.Reserved); i++ {
		b = appendFloat32(b, r.Reserved[i])
	}
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler, the result is
// always RecordSize bytes.
func (r *Record) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, RecordSize)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return errors.Errorf("invalid record size: %d", len(data))
	}
	r.Seconds = binary.LittleEndian.Uint32(data[0:])
	r.Nanos = binary.LittleEndian.Uint32(data[4:])
	r.LocType = binary.LittleEndian.Uint32(data[8:])
	r.X = readFloat32(data[12:])
	r.Y = readFloat32(data[16:])
	r.Z = readFloat32(data[20:])
	for i := 0; i < len(r.Reserved); i++ {
		r.Reserved[i] = readFloat32(data[24+4*i:])
	}
	return nil
}

func appendFloat32(b []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
