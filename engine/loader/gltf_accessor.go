package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfReadAccessor reads the accessor at index through the modeler package, which resolves
// buffer views, strides and sparse storage.
func gltfReadAccessor(doc *gltf.Document, index int) (any, error) {
	if index < 0 || index >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d: %w", index, ErrInvalidIndex)
	}
	data, err := modeler.ReadAccessor(doc, doc.Accessors[index], nil)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", index, err)
	}
	return data, nil
}

// gltfReadScalars reads a SCALAR accessor as float32. Integer components are treated as
// normalized, which is how glTF stores quantized animation times and morph weights.
func gltfReadScalars(doc *gltf.Document, index int) ([]float32, error) {
	data, err := gltfReadAccessor(doc, index)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []float32:
		return v, nil
	case []int8:
		return gltfConvert(v, gltfNormalizeInt8), nil
	case []uint8:
		return gltfConvert(v, gltfNormalizeUint8), nil
	case []int16:
		return gltfConvert(v, gltfNormalizeInt16), nil
	case []uint16:
		return gltfConvert(v, gltfNormalizeUint16), nil
	default:
		return nil, fmt.Errorf("accessor %d: scalar read got %T: %w", index, data, ErrAccessorType)
	}
}

// gltfReadVec3s reads a float VEC3 accessor.
func gltfReadVec3s(doc *gltf.Document, index int) ([][3]float32, error) {
	data, err := gltfReadAccessor(doc, index)
	if err != nil {
		return nil, err
	}
	v, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: vec3 read got %T: %w", index, data, ErrAccessorType)
	}
	return v, nil
}

// gltfReadVec4s reads a VEC4 accessor. Quantized rotations (KHR_mesh_quantization) are
// normalized to float32.
func gltfReadVec4s(doc *gltf.Document, index int) ([][4]float32, error) {
	data, err := gltfReadAccessor(doc, index)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case [][4]float32:
		return v, nil
	case [][4]int8:
		return gltfConvert(v, gltfNormalizeVec4(gltfNormalizeInt8)), nil
	case [][4]uint8:
		return gltfConvert(v, gltfNormalizeVec4(gltfNormalizeUint8)), nil
	case [][4]int16:
		return gltfConvert(v, gltfNormalizeVec4(gltfNormalizeInt16)), nil
	case [][4]uint16:
		return gltfConvert(v, gltfNormalizeVec4(gltfNormalizeUint16)), nil
	default:
		return nil, fmt.Errorf("accessor %d: vec4 read got %T: %w", index, data, ErrAccessorType)
	}
}

// gltfReadMat4s reads a float MAT4 accessor. The column-major layout is kept as is.
func gltfReadMat4s(doc *gltf.Document, index int) ([][16]float32, error) {
	data, err := gltfReadAccessor(doc, index)
	if err != nil {
		return nil, err
	}
	v, ok := data.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("accessor %d: mat4 read got %T: %w", index, data, ErrAccessorType)
	}

	out := make([][16]float32, len(v))
	for i, m := range v {
		for c := range 4 {
			copy(out[i][c*4:c*4+4], m[c][:])
		}
	}
	return out, nil
}

func gltfConvert[S, D any](src []S, fn func(S) D) []D {
	out := make([]D, len(src))
	for i, s := range src {
		out[i] = fn(s)
	}
	return out
}

func gltfNormalizeVec4[T any](fn func(T) float32) func([4]T) [4]float32 {
	return func(v [4]T) [4]float32 {
		return [4]float32{fn(v[0]), fn(v[1]), fn(v[2]), fn(v[3])}
	}
}

func gltfNormalizeInt8(c int8) float32 {
	return max(float32(c)/127, -1)
}

func gltfNormalizeUint8(c uint8) float32 {
	return float32(c) / 255
}

func gltfNormalizeInt16(c int16) float32 {
	return max(float32(c)/32767, -1)
}

func gltfNormalizeUint16(c uint16) float32 {
	return float32(c) / 65535
}
