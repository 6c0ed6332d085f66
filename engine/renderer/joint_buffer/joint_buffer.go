package joint_buffer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/skin"

	"github.com/cogentcore/webgpu/wgpu"
)

// jointMatrixSize is the byte size of one column-major mat4x4<f32>.
const jointMatrixSize = 16 * 4

var (
	// ErrCapacityExceeded is returned when a skin has more joints than the buffer holds.
	ErrCapacityExceeded = errors.New("joint count exceeds buffer capacity")

	// ErrNotInitialized is returned by Upload before InitGPU has created the buffer.
	ErrNotInitialized = errors.New("joint buffer has no GPU buffer")
)

// BufferWrite describes a single write into the joint buffer at a byte offset.
// Data is only valid until the next Stage call on the same JointBuffer.
type BufferWrite struct {
	Binding int
	Offset  uint64
	Data    []byte
}

// jointBuffer is the implementation of the JointBuffer interface.
type jointBuffer struct {
	mu sync.Mutex

	label     string
	binding   int
	maxJoints int

	buffer *wgpu.Buffer

	// Reusable staging buffer to avoid per-frame heap allocations.
	// wgpu's queue.WriteBuffer copies data internally before returning,
	// so a single buffer reused every frame is safe.
	staging []byte
}

// JointBuffer stages a skin's joint matrices and uploads them into a GPU storage buffer
// bound as array<mat4x4<f32>> in a skinning shader.
//
// Staging is CPU only and can be tested without a device; InitGPU and Upload need a live
// wgpu device and queue.
type JointBuffer interface {
	// Label returns the buffer label used for the GPU resource.
	//
	// Returns:
	//   - string: the label
	Label() string

	// MaxJoints returns the joint capacity of the buffer.
	//
	// Returns:
	//   - int: the maximum number of joint matrices
	MaxJoints() int

	// Size returns the GPU buffer size in bytes.
	//
	// Returns:
	//   - uint64: MaxJoints * 64
	Size() uint64

	// Stage copies the skin's current joint matrices into the staging buffer.
	// Call after the skin's joint matrices were refreshed for the frame.
	//
	// Parameters:
	//   - s: the skin to stage
	//
	// Returns:
	//   - BufferWrite: the write covering JointCount matrices at offset 0
	//   - error: ErrCapacityExceeded if the skin does not fit
	Stage(s *skin.Skin) (BufferWrite, error)

	// InitGPU creates the storage buffer on the device. Calling it again replaces the buffer.
	//
	// Parameters:
	//   - device: the wgpu device
	//
	// Returns:
	//   - error: error if buffer creation fails
	InitGPU(device *wgpu.Device) error

	// Upload writes a staged BufferWrite to the GPU buffer through the queue.
	//
	// Parameters:
	//   - queue: the wgpu queue
	//   - w: the write returned by Stage
	//
	// Returns:
	//   - error: ErrNotInitialized before InitGPU, ErrCapacityExceeded if the write overflows
	Upload(queue *wgpu.Queue, w BufferWrite) error

	// Buffer returns the GPU buffer, or nil before InitGPU.
	//
	// Returns:
	//   - *wgpu.Buffer: the storage buffer
	Buffer() *wgpu.Buffer

	// Release frees the GPU buffer.
	Release()
}

var _ JointBuffer = &jointBuffer{}

// NewJointBuffer creates a JointBuffer with the given options applied.
// Defaults: label "Joint Matrices", binding 0, capacity 128 joints.
//
// Parameters:
//   - options: a variadic list of JointBufferBuilderOption functions
//
// Returns:
//   - JointBuffer: the new joint buffer
func NewJointBuffer(options ...JointBufferBuilderOption) JointBuffer {
	b := &jointBuffer{
		label:     "Joint Matrices",
		maxJoints: 128,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *jointBuffer) Label() string {
	return b.label
}

func (b *jointBuffer) MaxJoints() int {
	return b.maxJoints
}

func (b *jointBuffer) Size() uint64 {
	return uint64(b.maxJoints) * jointMatrixSize
}

func (b *jointBuffer) Stage(s *skin.Skin) (BufferWrite, error) {
	if s.JointCount() > b.maxJoints {
		return BufferWrite{}, fmt.Errorf("%s: skin %q has %d joints, capacity %d: %w",
			b.label, s.Name(), s.JointCount(), b.maxJoints, ErrCapacityExceeded)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.staging = append(b.staging[:0], common.SliceToBytes(s.JointMatricesArray())...)
	return BufferWrite{Binding: b.binding, Offset: 0, Data: b.staging}, nil
}

func (b *jointBuffer) InitGPU(device *wgpu.Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            b.label,
		Size:             uint64(b.maxJoints) * jointMatrixSize,
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to create buffer: %w", b.label, err)
	}

	if b.buffer != nil {
		b.buffer.Release()
	}
	b.buffer = buf
	return nil
}

func (b *jointBuffer) Upload(queue *wgpu.Queue, w BufferWrite) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer == nil {
		return fmt.Errorf("%s: %w", b.label, ErrNotInitialized)
	}
	if w.Offset+uint64(len(w.Data)) > uint64(b.maxJoints)*jointMatrixSize {
		return fmt.Errorf("%s: write of %d bytes at %d: %w", b.label, len(w.Data), w.Offset, ErrCapacityExceeded)
	}
	if len(w.Data) == 0 {
		return nil
	}

	queue.WriteBuffer(b.buffer, w.Offset, w.Data)
	return nil
}

func (b *jointBuffer) Buffer() *wgpu.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buffer
}

func (b *jointBuffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
