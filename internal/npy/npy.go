// Package npy implements the NumPy NPY v1.0 array format for float32
// vectors. Style vector blobs written here are byte-compatible with
// np.save/np.load, which keeps existing voice databases readable.
package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// magic is the NPY file signature followed by format version 1.0
var magic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00}

// headerAlign pads the full preamble (magic + version + length + header)
// to this boundary, matching what NumPy writes
const headerAlign = 64

// DecodeError indicates a blob that cannot be reconstructed into a vector.
// It is treated as data corruption and never masked.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("npy: cannot decode blob: %s", e.Reason)
}

// Encode serializes a float32 vector as a 1-D NPY array
func Encode(vec []float32) []byte {
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d,), }", len(vec))

	// Pad with spaces so the data section starts aligned, terminated by \n
	padded := len(magic) + 2 + len(header) + 1
	if rem := padded % headerAlign; rem != 0 {
		header += strings.Repeat(" ", headerAlign-rem)
	}
	header += "\n"

	buf := bytes.NewBuffer(make([]byte, 0, len(magic)+2+len(header)+4*len(vec)))
	buf.Write(magic)
	binary.Write(buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	for _, v := range vec {
		binary.Write(buf, binary.LittleEndian, math.Float32bits(v))
	}
	return buf.Bytes()
}

// Decode reconstructs a float32 vector from an NPY blob. Arrays of higher
// rank are accepted and returned flattened in C order; the element count is
// always the product of the stored shape.
func Decode(blob []byte) ([]float32, error) {
	if len(blob) < len(magic)+2 {
		return nil, &DecodeError{Reason: "blob shorter than NPY preamble"}
	}
	if !bytes.Equal(blob[:6], magic[:6]) {
		return nil, &DecodeError{Reason: "missing NPY magic"}
	}
	if blob[6] != 1 {
		return nil, &DecodeError{Reason: fmt.Sprintf("unsupported NPY version %d.%d", blob[6], blob[7])}
	}

	headerLen := int(binary.LittleEndian.Uint16(blob[8:10]))
	if len(blob) < 10+headerLen {
		return nil, &DecodeError{Reason: "truncated NPY header"}
	}
	header := string(blob[10 : 10+headerLen])

	descr, err := headerValue(header, "descr")
	if err != nil {
		return nil, err
	}
	if descr != "<f4" {
		return nil, &DecodeError{Reason: fmt.Sprintf("unsupported dtype %q, want <f4", descr)}
	}

	order, err := headerValue(header, "fortran_order")
	if err != nil {
		return nil, err
	}
	if order != "False" {
		return nil, &DecodeError{Reason: "fortran_order arrays are not supported"}
	}

	count, err := shapeElements(header)
	if err != nil {
		return nil, err
	}

	data := blob[10+headerLen:]
	// Compare via division: 4*count would overflow for hostile shapes
	if count > len(data)/4 {
		return nil, &DecodeError{Reason: fmt.Sprintf("truncated data: have %d bytes, want %d elements", len(data), count)}
	}

	vec := make([]float32, count)
	for i := range vec {
		bits := binary.LittleEndian.Uint32(data[4*i:])
		vec[i] = math.Float32frombits(bits)
	}
	return vec, nil
}

// headerValue extracts the value for a key from the NPY header dict
func headerValue(header, key string) (string, error) {
	needle := "'" + key + "':"
	idx := strings.Index(header, needle)
	if idx < 0 {
		return "", &DecodeError{Reason: fmt.Sprintf("header missing %q", key)}
	}
	rest := strings.TrimLeft(header[idx+len(needle):], " ")
	if rest == "" {
		return "", &DecodeError{Reason: fmt.Sprintf("header value for %q is empty", key)}
	}

	if rest[0] == '\'' {
		end := strings.IndexByte(rest[1:], '\'')
		if end < 0 {
			return "", &DecodeError{Reason: fmt.Sprintf("unterminated string for %q", key)}
		}
		return rest[1 : 1+end], nil
	}

	end := strings.IndexAny(rest, ",}")
	if end < 0 {
		return "", &DecodeError{Reason: fmt.Sprintf("malformed value for %q", key)}
	}
	return strings.TrimSpace(rest[:end]), nil
}

// shapeElements parses the shape tuple and returns the total element count
func shapeElements(header string) (int, error) {
	idx := strings.Index(header, "'shape':")
	if idx < 0 {
		return 0, &DecodeError{Reason: "header missing \"shape\""}
	}
	rest := header[idx+len("'shape':"):]
	open := strings.IndexByte(rest, '(')
	end := strings.IndexByte(rest, ')')
	if open < 0 || end < open {
		return 0, &DecodeError{Reason: "malformed shape tuple"}
	}

	count := 1
	dims := 0
	for _, part := range strings.Split(rest[open+1:end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, &DecodeError{Reason: fmt.Sprintf("invalid shape dimension %q", part)}
		}
		if n > 0 && count > math.MaxInt/n {
			return 0, &DecodeError{Reason: "shape element count overflows"}
		}
		count *= n
		dims++
	}
	if dims == 0 {
		// Shape () is a scalar, a single element
		count = 1
	}
	return count, nil
}
