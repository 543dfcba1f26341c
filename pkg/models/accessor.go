package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/prism/pkg/math3d"
)

// readVec3Accessor decodes a VEC3 float accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, start, stride, err := accessorData(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		off := start + i*stride
		out[i] = math3d.V3(
			float64(readFloat32(data[off:])),
			float64(readFloat32(data[off+4:])),
			float64(readFloat32(data[off+8:])),
		)
	}
	return out, nil
}

// readIndices decodes a scalar index accessor of any of the three
// allowed component widths.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var width int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorData(doc, accessor, width)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range out {
		off := start + i*stride
		switch width {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return out, nil
}

// accessorData resolves an accessor down to its backing bytes. Only
// embedded (GLB) buffers are supported; documents referencing external
// buffer files are rejected.
func accessorData(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffer %q not supported", buffer.URI)
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride = view.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	return buffer.Data, view.ByteOffset + accessor.ByteOffset, stride, nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
