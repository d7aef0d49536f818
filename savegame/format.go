package savegame

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/phanxgames/tilewalk"
)

// Magic and Version open every save file.
var (
	Magic   = [4]byte{0xFA, 0x3E, 0x50, 0x3E}
	Version = [5]byte{'V', '0', '0', '0', '1'}
)

var (
	ErrBadMagic  = errors.New("savegame: not a save file")
	ErrVersion   = errors.New("savegame: unsupported version")
	ErrTruncated = errors.New("savegame: truncated record")
	ErrFileName  = errors.New("savegame: file name cannot be stored")
)

// Snapshot returns the state of every node of s: render-list nodes in
// container order, then layers.
func Snapshot(s *tilewalk.Surface) []tilewalk.NodeState {
	nodes := s.Nodes()
	layers := s.Layers()
	out := make([]tilewalk.NodeState, 0, len(nodes)+len(layers))
	for _, n := range nodes {
		out = append(out, n.State())
	}
	for _, n := range layers {
		out = append(out, n.State())
	}
	return out
}

// Apply restores states onto the nodes of s with matching ids. Every known
// id is restored; unknown ids are reported together in a single error
// wrapping tilewalk.ErrNotFound.
func Apply(s *tilewalk.Surface, states []tilewalk.NodeState) error {
	var missing []string
	for _, st := range states {
		n, ok := s.FindNode(st.ID)
		if !ok {
			missing = append(missing, fmt.Sprint(st.ID))
			continue
		}
		n.Restore(st)
	}
	if len(missing) > 0 {
		return fmt.Errorf("savegame: nodes %s: %w", strings.Join(missing, ","), tilewalk.ErrNotFound)
	}
	return nil
}

// Encode writes a complete save file.
func Encode(w io.Writer, states []tilewalk.NodeState) error {
	var e encoder
	e.u32(uint32(len(states)))
	for i := range states {
		if err := e.record(&states[i]); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	bw.Write(Magic[:])
	bw.Write(Version[:])
	zw := zlib.NewWriter(bw)
	if _, err := zw.Write(e.buf); err != nil {
		return fmt.Errorf("savegame: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("savegame: compress: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("savegame: write: %w", err)
	}
	return nil
}

// Decode reads a save file written by Encode.
func Decode(r io.Reader) ([]tilewalk.NodeState, error) {
	var header [len(Magic) + len(Version)]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrBadMagic)
	}
	if !bytes.Equal(header[:4], Magic[:]) {
		return nil, ErrBadMagic
	}
	if !bytes.Equal(header[4:], Version[:]) {
		return nil, fmt.Errorf("%w: %q", ErrVersion, header[4:])
	}

	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("savegame: inflate: %w", err)
	}
	defer zr.Close()
	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("savegame: inflate: %w", err)
	}

	d := decoder{buf: payload}
	count := d.u32()
	if d.err != nil {
		return nil, d.err
	}
	// each record is far larger than 4 bytes
	if int(count) > len(payload)/4 {
		return nil, fmt.Errorf("%w: %d records claimed", ErrTruncated, count)
	}
	states := make([]tilewalk.NodeState, 0, count)
	for i := range int(count) {
		st := d.record()
		if d.err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, d.err)
		}
		states = append(states, st)
	}
	return states, nil
}

// Save writes the state of s to path.
func Save(path string, s *tilewalk.Surface) (int, error) {
	states := Snapshot(s)
	var buf bytes.Buffer
	if err := Encode(&buf, states); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("savegame: %w", err)
	}
	return len(states), nil
}

// Load reads path and applies it to s.
func Load(path string, s *tilewalk.Surface) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("savegame: %w", err)
	}
	defer f.Close()
	states, err := Decode(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return Apply(s, states)
}

type encoder struct {
	buf []byte
}

func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }
func (e *encoder) u16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) i32(v int)    { e.u32(uint32(int32(v))) }

func (e *encoder) flag(b bool) {
	if b {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *encoder) record(st *tilewalk.NodeState) error {
	e.u32(st.ID)
	e.flag(st.Obstruct)

	dirs := slices.Sorted(maps.Keys(st.Files))
	e.u16(uint16(len(dirs)))
	for _, dir := range dirs {
		e.u16(uint16(dir))
		for _, name := range st.Files[dir] {
			if name == "" || strings.IndexByte(name, 0) >= 0 {
				return fmt.Errorf("%w: %q", ErrFileName, name)
			}
			e.buf = append(e.buf, name...)
			e.buf = append(e.buf, 0)
		}
		e.buf = append(e.buf, 0)
	}

	e.u16(uint16(st.Dir))
	e.flag(st.Animate)
	e.i32(st.AnimCounter)
	e.i32(st.AnimWait)
	e.i32(st.AlphaSpeed)
	e.i32(st.AlphaCycleSpeed)
	e.i32(st.RotSpeed)
	e.i32(st.RotCycleSpeed)
	e.i32(st.Alpha)
	e.i32(st.TargetAlpha)
	e.flag(st.AlphaCycle)
	e.i32(st.AlphaMin)
	e.i32(st.AlphaMax)
	e.i32(st.Angle)
	e.i32(st.TargetAngle)
	e.flag(st.RotCycle)
	c := st.TextColor
	e.buf = append(e.buf, c.R, c.G, c.B, c.A)
	e.i32(st.TextOffsetX)
	e.i32(st.TextOffsetY)
	e.flag(st.TextStale)
	e.i32(st.ObsTop)
	e.i32(st.ObsRight)
	e.i32(st.ObsBottom)
	e.i32(st.ObsLeft)
	e.i32(st.X)
	e.i32(st.Y)
	e.i32(st.OffsetX)
	e.i32(st.OffsetY)
	return nil
}

// decoder reads fields until the first error, after which every read
// returns zero.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.buf) < n {
		d.err = ErrTruncated
		return nil
	}
	b := d.buf[:n]
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) i32() int { return int(int32(d.u32())) }

func (d *decoder) flag() bool {
	if b := d.take(1); b != nil {
		return b[0] != 0
	}
	return false
}

// cstring reads a NUL-terminated name. An empty name ends a list.
func (d *decoder) cstring() string {
	if d.err != nil {
		return ""
	}
	i := bytes.IndexByte(d.buf, 0)
	if i < 0 {
		d.err = ErrTruncated
		return ""
	}
	s := string(d.buf[:i])
	d.buf = d.buf[i+1:]
	return s
}

func (d *decoder) record() tilewalk.NodeState {
	var st tilewalk.NodeState
	st.ID = d.u32()
	st.Obstruct = d.flag()

	ndirs := int(d.u16())
	st.Files = make(map[tilewalk.Direction][]string, ndirs)
	for range ndirs {
		dir := tilewalk.Direction(d.u16())
		var names []string
		for d.err == nil {
			name := d.cstring()
			if name == "" {
				break
			}
			names = append(names, name)
		}
		st.Files[dir] = names
	}

	st.Dir = tilewalk.Direction(d.u16())
	st.Animate = d.flag()
	st.AnimCounter = d.i32()
	st.AnimWait = d.i32()
	st.AlphaSpeed = d.i32()
	st.AlphaCycleSpeed = d.i32()
	st.RotSpeed = d.i32()
	st.RotCycleSpeed = d.i32()
	st.Alpha = d.i32()
	st.TargetAlpha = d.i32()
	st.AlphaCycle = d.flag()
	st.AlphaMin = d.i32()
	st.AlphaMax = d.i32()
	st.Angle = d.i32()
	st.TargetAngle = d.i32()
	st.RotCycle = d.flag()
	if b := d.take(4); b != nil {
		st.TextColor = color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	st.TextOffsetX = d.i32()
	st.TextOffsetY = d.i32()
	st.TextStale = d.flag()
	st.ObsTop = d.i32()
	st.ObsRight = d.i32()
	st.ObsBottom = d.i32()
	st.ObsLeft = d.i32()
	st.X = d.i32()
	st.Y = d.i32()
	st.OffsetX = d.i32()
	st.OffsetY = d.i32()
	return st
}
