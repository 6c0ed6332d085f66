package joint_buffer

// JointBufferBuilderOption is a functional option for configuring a JointBuffer via NewJointBuffer.
type JointBufferBuilderOption func(*jointBuffer)

// WithLabel is an option builder that sets the GPU buffer label.
//
// Parameters:
//   - label: the buffer label
//
// Returns:
//   - JointBufferBuilderOption: a function that applies the label option to a joint buffer
func WithLabel(label string) JointBufferBuilderOption {
	return func(b *jointBuffer) {
		b.label = label
	}
}

// WithBinding is an option builder that sets the shader binding index reported in staged writes.
//
// Parameters:
//   - binding: the binding index
//
// Returns:
//   - JointBufferBuilderOption: a function that applies the binding option to a joint buffer
func WithBinding(binding int) JointBufferBuilderOption {
	return func(b *jointBuffer) {
		b.binding = binding
	}
}

// WithMaxJoints is an option builder that sets the joint capacity. Values below 1 are ignored.
//
// Parameters:
//   - n: the maximum number of joint matrices
//
// Returns:
//   - JointBufferBuilderOption: a function that applies the capacity option to a joint buffer
func WithMaxJoints(n int) JointBufferBuilderOption {
	return func(b *jointBuffer) {
		if n > 0 {
			b.maxJoints = n
		}
	}
}
